package repositories

import (
	"eduone-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository ...
type FollowRepository interface {
	WithTx(tx *gorm.DB) FollowRepository
	Follow(followerID, followeeID uuid.UUID) (bool, error)
	Unfollow(followerID, followeeID uuid.UUID) (bool, error)
	IsFollowing(followerID, followeeID uuid.UUID) (bool, error)
	CountFollowers(userID uuid.UUID) (int64, error)
	CountFollowing(userID uuid.UUID) (int64, error)
	ListFollowers(userID uuid.UUID) ([]uuid.UUID, error)
	ListFollowing(userID uuid.UUID) ([]uuid.UUID, error)
}

type followRepository struct {
	Conn *gorm.DB
}

// NewFollowRepository ...
func NewFollowRepository(conn *gorm.DB) FollowRepository {
	return &followRepository{Conn: conn}
}

func (r *followRepository) WithTx(tx *gorm.DB) FollowRepository {
	return &followRepository{Conn: tx}
}

// Follow inserts the edge; a concurrent duplicate simply reports false.
func (r *followRepository) Follow(followerID, followeeID uuid.UUID) (bool, error) {
	edge := models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}
	res := r.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Unfollow(followerID, followeeID uuid.UUID) (bool, error) {
	res := r.Conn.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.FollowEdge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.Conn.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) CountFollowers(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.FollowEdge{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.Conn.Model(&models.FollowEdge{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowers(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.Conn.Model(&models.FollowEdge{}).
		Where("followee_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *followRepository) ListFollowing(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.Conn.Model(&models.FollowEdge{}).
		Where("follower_id = ?", userID).Pluck("followee_id", &ids).Error
	return ids, err
}
