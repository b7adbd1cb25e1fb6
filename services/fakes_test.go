package services

import (
	"context"
	"time"

	"eduone-core/cache"
	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. WithTx returns the fake itself so the
// injected transaction runner can hand services a nil *gorm.DB.

func testTxRunner() TxRunner {
	return func(fn func(tx *gorm.DB) error) error { return fn(nil) }
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
	sold  map[uuid.UUID]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}, sold: map[uuid.UUID]int{}}
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repositories.UserRepository { return r }

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(params models.ListParams) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ListPopularAuthors(limit int) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		if user.IsAuthor && user.IsActive {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Updates(id uuid.UUID, fields map[string]interface{}) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["username"]; ok {
		user.Username = v.(string)
	}
	if v, ok := fields["is_verified"]; ok {
		user.IsVerified = v.(bool)
	}
	if v, ok := fields["is_author"]; ok {
		user.IsAuthor = v.(bool)
	}
	if v, ok := fields["is_active"]; ok {
		user.IsActive = v.(bool)
	}
	return nil
}

func (r *fakeUserRepo) IncrementSoldCourses(id uuid.UUID, delta int) error {
	r.sold[id] += delta
	return nil
}

func (r *fakeUserRepo) ExistsByID(id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsActive = false
	return nil
}

type fakeCourseRepo struct {
	courses map[uint]*models.Course
	nextID  uint
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[uint]*models.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) WithTx(tx *gorm.DB) repositories.CourseRepository { return r }

func (r *fakeCourseRepo) Create(course *models.Course) error {
	course.ID = r.nextID
	r.nextID++
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) FindByID(id uint) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) FindVisibleByID(id uint) (*models.Course, error) {
	course, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course.IsDeleted || !course.IsVisible {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) List(params models.ListParams) ([]models.Course, int64, error) {
	var out []models.Course
	for _, course := range r.courses {
		if !course.IsDeleted && course.IsVisible {
			out = append(out, *course)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) ListByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	var out []models.Course
	for _, course := range r.courses {
		if course.UserID == authorID {
			out = append(out, *course)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) ListDeletedByAuthor(authorID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	var out []models.Course
	for _, course := range r.courses {
		if course.UserID == authorID && course.IsDeleted {
			out = append(out, *course)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) ListSubscribed(userID uuid.UUID, params models.ListParams) ([]models.Course, int64, error) {
	return nil, 0, nil
}

func (r *fakeCourseRepo) ListByCategory(categoryID uint, params models.ListParams) ([]models.Course, int64, error) {
	var out []models.Course
	for _, course := range r.courses {
		if course.CategoryID != nil && *course.CategoryID == categoryID && !course.IsDeleted && course.IsVisible {
			out = append(out, *course)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) Updates(id uint, fields map[string]interface{}) error {
	course, ok := r.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["title"]; ok {
		course.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		course.Description = v.(string)
	}
	if v, ok := fields["price"]; ok {
		course.Price = v.(int)
	}
	return nil
}

func (r *fakeCourseRepo) SoftDelete(id uint) error {
	r.courses[id].IsDeleted = true
	return nil
}

func (r *fakeCourseRepo) Restore(id uint) error {
	r.courses[id].IsDeleted = false
	return nil
}

func (r *fakeCourseRepo) SetVisibility(id uint, visible bool) error {
	r.courses[id].IsVisible = visible
	return nil
}

func (r *fakeCourseRepo) ExistsByID(id uint) (bool, error) {
	course, ok := r.courses[id]
	return ok && !course.IsDeleted, nil
}

type fakeLessonRepo struct {
	lessons map[uint]*models.Lesson
	nextID  uint
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: map[uint]*models.Lesson{}, nextID: 1}
}

func (r *fakeLessonRepo) WithTx(tx *gorm.DB) repositories.LessonRepository { return r }

func (r *fakeLessonRepo) Create(lesson *models.Lesson) error {
	lesson.ID = r.nextID
	r.nextID++
	copied := *lesson
	r.lessons[lesson.ID] = &copied
	return nil
}

func (r *fakeLessonRepo) FindByID(id uint) (*models.Lesson, error) {
	lesson, ok := r.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (r *fakeLessonRepo) ListByCourse(courseID uint, params models.ListParams) ([]models.Lesson, int64, error) {
	var out []models.Lesson
	for _, lesson := range r.lessons {
		if lesson.CourseID == courseID {
			out = append(out, *lesson)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLessonRepo) Updates(id uint, fields map[string]interface{}) error {
	lesson, ok := r.lessons[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["title"]; ok {
		lesson.Title = v.(string)
	}
	return nil
}

func (r *fakeLessonRepo) Delete(id uint) error {
	delete(r.lessons, id)
	return nil
}

func (r *fakeLessonRepo) ExistsByID(id uint) (bool, error) {
	_, ok := r.lessons[id]
	return ok, nil
}

type fakeHomeworkRepo struct {
	homeworks map[uint]*models.Homework
	nextID    uint
}

func newFakeHomeworkRepo() *fakeHomeworkRepo {
	return &fakeHomeworkRepo{homeworks: map[uint]*models.Homework{}, nextID: 1}
}

func (r *fakeHomeworkRepo) WithTx(tx *gorm.DB) repositories.HomeworkRepository { return r }

func (r *fakeHomeworkRepo) Create(homework *models.Homework) error {
	homework.ID = r.nextID
	r.nextID++
	copied := *homework
	r.homeworks[homework.ID] = &copied
	return nil
}

func (r *fakeHomeworkRepo) FindByID(id uint) (*models.Homework, error) {
	homework, ok := r.homeworks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *homework
	return &copied, nil
}

func (r *fakeHomeworkRepo) ListByLesson(lessonID uint) ([]models.Homework, error) {
	var out []models.Homework
	for _, homework := range r.homeworks {
		if homework.LessonID == lessonID {
			out = append(out, *homework)
		}
	}
	return out, nil
}

func (r *fakeHomeworkRepo) Updates(id uint, fields map[string]interface{}) error { return nil }

func (r *fakeHomeworkRepo) Delete(id uint) error {
	delete(r.homeworks, id)
	return nil
}

type fakeContentRepo struct {
	contents map[uint]*models.Content
	nextID   uint
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: map[uint]*models.Content{}, nextID: 1}
}

func (r *fakeContentRepo) WithTx(tx *gorm.DB) repositories.ContentRepository { return r }

func (r *fakeContentRepo) Create(content *models.Content) error {
	content.ID = r.nextID
	r.nextID++
	copied := *content
	r.contents[content.ID] = &copied
	return nil
}

func (r *fakeContentRepo) FindByID(id uint) (*models.Content, error) {
	content, ok := r.contents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *content
	return &copied, nil
}

func (r *fakeContentRepo) ListByLesson(lessonID uint) ([]models.Content, error) {
	var out []models.Content
	for _, content := range r.contents {
		if content.LessonID == lessonID {
			out = append(out, *content)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) Updates(id uint, fields map[string]interface{}) error { return nil }

func (r *fakeContentRepo) Delete(id uint) error {
	delete(r.contents, id)
	return nil
}

type fakeFileRepo struct {
	files  map[uint]*models.File
	byURL  map[string]uint
	nextID uint
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[uint]*models.File{}, byURL: map[string]uint{}, nextID: 1}
}

func (r *fakeFileRepo) WithTx(tx *gorm.DB) repositories.FileRepository { return r }

func (r *fakeFileRepo) Create(file *models.File) (bool, error) {
	if _, ok := r.byURL[file.URL]; ok {
		return false, nil
	}
	file.ID = r.nextID
	r.nextID++
	copied := *file
	r.files[file.ID] = &copied
	r.byURL[file.URL] = file.ID
	return true, nil
}

func (r *fakeFileRepo) FindByID(id uint) (*models.File, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) FindByOwner(owner models.FileOwner) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.Owner == owner {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(id uint) error {
	file, ok := r.files[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byURL, file.URL)
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) DeleteByOwner(owner models.FileOwner) error {
	for id, file := range r.files {
		if file.Owner == owner {
			delete(r.byURL, file.URL)
			delete(r.files, id)
		}
	}
	return nil
}

func (r *fakeFileRepo) CountVideosByUploader(userID uuid.UUID) (int64, error) {
	var count int64
	for _, file := range r.files {
		if file.UploadedBy == userID && file.Type == models.FileTypeVideo {
			count++
		}
	}
	return count, nil
}

type grantKey struct {
	user        uuid.UUID
	achievement uint
}

type fakeAchievementRepo struct {
	byTitle map[string]*models.Achievement
	byID    map[uint]*models.Achievement
	grants  map[grantKey]bool
	nextID  uint
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{
		byTitle: map[string]*models.Achievement{},
		byID:    map[uint]*models.Achievement{},
		grants:  map[grantKey]bool{},
		nextID:  1,
	}
}

func (r *fakeAchievementRepo) seed(titles ...string) {
	for _, title := range titles {
		achievement := &models.Achievement{ID: r.nextID, Title: title}
		r.nextID++
		r.byTitle[title] = achievement
		r.byID[achievement.ID] = achievement
	}
}

func (r *fakeAchievementRepo) WithTx(tx *gorm.DB) repositories.AchievementRepository { return r }

func (r *fakeAchievementRepo) Create(achievement *models.Achievement) error {
	achievement.ID = r.nextID
	r.nextID++
	r.byTitle[achievement.Title] = achievement
	r.byID[achievement.ID] = achievement
	return nil
}

func (r *fakeAchievementRepo) FindByID(id uint) (*models.Achievement, error) {
	achievement, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return achievement, nil
}

func (r *fakeAchievementRepo) FindByTitle(title string) (*models.Achievement, error) {
	achievement, ok := r.byTitle[title]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return achievement, nil
}

func (r *fakeAchievementRepo) List(params models.ListParams) ([]models.Achievement, int64, error) {
	var out []models.Achievement
	for _, achievement := range r.byID {
		out = append(out, *achievement)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAchievementRepo) Updates(id uint, fields map[string]interface{}) error { return nil }

func (r *fakeAchievementRepo) Delete(id uint) error {
	achievement, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byTitle, achievement.Title)
	delete(r.byID, id)
	return nil
}

func (r *fakeAchievementRepo) Grant(userID uuid.UUID, achievementID uint) (bool, error) {
	key := grantKey{user: userID, achievement: achievementID}
	if r.grants[key] {
		return false, nil
	}
	r.grants[key] = true
	return true, nil
}

func (r *fakeAchievementRepo) Revoke(userID uuid.UUID, achievementID uint) (bool, error) {
	key := grantKey{user: userID, achievement: achievementID}
	if !r.grants[key] {
		return false, nil
	}
	delete(r.grants, key)
	return true, nil
}

func (r *fakeAchievementRepo) ListGrantedTitles(userID uuid.UUID) ([]string, error) {
	var titles []string
	for key := range r.grants {
		if key.user == userID {
			titles = append(titles, r.byID[key.achievement].Title)
		}
	}
	return titles, nil
}

type followKey struct {
	follower uuid.UUID
	followee uuid.UUID
}

type fakeFollowRepo struct {
	edges map[followKey]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: map[followKey]bool{}}
}

func (r *fakeFollowRepo) WithTx(tx *gorm.DB) repositories.FollowRepository { return r }

func (r *fakeFollowRepo) Follow(followerID, followeeID uuid.UUID) (bool, error) {
	key := followKey{follower: followerID, followee: followeeID}
	if r.edges[key] {
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *fakeFollowRepo) Unfollow(followerID, followeeID uuid.UUID) (bool, error) {
	key := followKey{follower: followerID, followee: followeeID}
	if !r.edges[key] {
		return false, nil
	}
	delete(r.edges, key)
	return true, nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followeeID uuid.UUID) (bool, error) {
	return r.edges[followKey{follower: followerID, followee: followeeID}], nil
}

func (r *fakeFollowRepo) CountFollowers(userID uuid.UUID) (int64, error) {
	var count int64
	for key := range r.edges {
		if key.followee == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) CountFollowing(userID uuid.UUID) (int64, error) {
	var count int64
	for key := range r.edges {
		if key.follower == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) ListFollowers(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range r.edges {
		if key.followee == userID {
			ids = append(ids, key.follower)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) ListFollowing(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range r.edges {
		if key.follower == userID {
			ids = append(ids, key.followee)
		}
	}
	return ids, nil
}

type subKey struct {
	user   uuid.UUID
	course uint
}

type fakeSubscriptionRepo struct {
	subs       map[subKey]bool
	grads      map[subKey]bool
	courseRepo *fakeCourseRepo
}

func newFakeSubscriptionRepo(courseRepo *fakeCourseRepo) *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subs:       map[subKey]bool{},
		grads:      map[subKey]bool{},
		courseRepo: courseRepo,
	}
}

func (r *fakeSubscriptionRepo) WithTx(tx *gorm.DB) repositories.SubscriptionRepository { return r }

func (r *fakeSubscriptionRepo) Subscribe(userID uuid.UUID, courseID uint) (bool, error) {
	key := subKey{user: userID, course: courseID}
	if r.subs[key] {
		return false, nil
	}
	r.subs[key] = true
	return true, nil
}

func (r *fakeSubscriptionRepo) Unsubscribe(userID uuid.UUID, courseID uint) (bool, error) {
	key := subKey{user: userID, course: courseID}
	if !r.subs[key] {
		return false, nil
	}
	delete(r.subs, key)
	return true, nil
}

func (r *fakeSubscriptionRepo) IsSubscribed(userID uuid.UUID, courseID uint) (bool, error) {
	return r.subs[subKey{user: userID, course: courseID}], nil
}

func (r *fakeSubscriptionRepo) CountByCourse(courseID uint) (int64, error) {
	var count int64
	for key := range r.subs {
		if key.course == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) CountSubscribersOfAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	for key := range r.subs {
		if course, ok := r.courseRepo.courses[key.course]; ok && course.UserID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) Graduate(userID uuid.UUID, courseID uint) (bool, error) {
	key := subKey{user: userID, course: courseID}
	if r.grads[key] {
		return false, nil
	}
	r.grads[key] = true
	return true, nil
}

func (r *fakeSubscriptionRepo) CountGraduatesOfAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	for key := range r.grads {
		if course, ok := r.courseRepo.courses[key.course]; ok && course.UserID == authorID {
			count++
		}
	}
	return count, nil
}

type fakeOutboxRepo struct {
	entries []*models.OutboxEntry
}

func newFakeOutboxRepo() *fakeOutboxRepo { return &fakeOutboxRepo{} }

func (r *fakeOutboxRepo) WithTx(tx *gorm.DB) repositories.OutboxRepository { return r }

func (r *fakeOutboxRepo) Enqueue(entry *models.OutboxEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeOutboxRepo) FetchDue(limit int) ([]models.OutboxEntry, error) {
	var out []models.OutboxEntry
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out, nil
}

func (r *fakeOutboxRepo) MarkDone(id uint) error { return nil }

func (r *fakeOutboxRepo) MarkRetry(id uint, attempts int, nextAttempt time.Time, lastError string) error {
	return nil
}

func (r *fakeOutboxRepo) MarkFailed(id uint, attempts int, lastError string) error { return nil }

func (r *fakeOutboxRepo) byIntent(intent models.OutboxIntent) []*models.OutboxEntry {
	var out []*models.OutboxEntry
	for _, entry := range r.entries {
		if entry.Intent == intent {
			out = append(out, entry)
		}
	}
	return out
}

type fakeTagRepo struct {
	tags    map[uint]*models.Tag
	byTitle map[string]uint
	courses map[[2]uint]bool
	lessons map[[2]uint]bool
	nextID  uint
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		tags:    map[uint]*models.Tag{},
		byTitle: map[string]uint{},
		courses: map[[2]uint]bool{},
		lessons: map[[2]uint]bool{},
		nextID:  1,
	}
}

func (r *fakeTagRepo) WithTx(tx *gorm.DB) repositories.TagRepository { return r }

func (r *fakeTagRepo) Create(tag *models.Tag) (bool, error) {
	if _, ok := r.byTitle[tag.Title]; ok {
		return false, nil
	}
	tag.ID = r.nextID
	r.nextID++
	r.tags[tag.ID] = tag
	r.byTitle[tag.Title] = tag.ID
	return true, nil
}

func (r *fakeTagRepo) FindByID(id uint) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (r *fakeTagRepo) FindByTitle(title string) (*models.Tag, error) {
	id, ok := r.byTitle[title]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.tags[id], nil
}

func (r *fakeTagRepo) Rename(id uint, title string) error {
	tag, ok := r.tags[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byTitle, tag.Title)
	tag.Title = title
	r.byTitle[title] = id
	return nil
}

func (r *fakeTagRepo) List(params models.ListParams) ([]models.Tag, int64, error) {
	var out []models.Tag
	for _, tag := range r.tags {
		out = append(out, *tag)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTagRepo) Delete(id uint) error {
	tag, ok := r.tags[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byTitle, tag.Title)
	delete(r.tags, id)
	return nil
}

func (r *fakeTagRepo) BindToCourse(tagID, courseID uint) (bool, error) {
	key := [2]uint{tagID, courseID}
	if r.courses[key] {
		return false, nil
	}
	r.courses[key] = true
	return true, nil
}

func (r *fakeTagRepo) UnbindFromCourse(tagID, courseID uint) (bool, error) {
	key := [2]uint{tagID, courseID}
	if !r.courses[key] {
		return false, nil
	}
	delete(r.courses, key)
	return true, nil
}

func (r *fakeTagRepo) BindToLesson(tagID, lessonID uint) (bool, error) {
	key := [2]uint{tagID, lessonID}
	if r.lessons[key] {
		return false, nil
	}
	r.lessons[key] = true
	return true, nil
}

func (r *fakeTagRepo) UnbindFromLesson(tagID, lessonID uint) (bool, error) {
	key := [2]uint{tagID, lessonID}
	if !r.lessons[key] {
		return false, nil
	}
	delete(r.lessons, key)
	return true, nil
}

func (r *fakeTagRepo) TitlesByLesson(lessonID uint) ([]string, error) {
	var titles []string
	for key := range r.lessons {
		if key[1] == lessonID {
			titles = append(titles, r.tags[key[0]].Title)
		}
	}
	return titles, nil
}

type fakeCategoryRepo struct {
	categories map[uint]*models.Category
	courseRepo *fakeCourseRepo
	nextID     uint
}

func newFakeCategoryRepo(courseRepo *fakeCourseRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[uint]*models.Category{},
		courseRepo: courseRepo,
		nextID:     1,
	}
}

func (r *fakeCategoryRepo) WithTx(tx *gorm.DB) repositories.CategoryRepository { return r }

func (r *fakeCategoryRepo) Create(category *models.Category) error {
	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) List(params models.ListParams) ([]models.Category, int64, error) {
	var out []models.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCategoryRepo) ListPopular(limit int) ([]models.Category, error) {
	var out []models.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Updates(id uint, fields map[string]interface{}) error { return nil }

func (r *fakeCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) AssignToCourse(categoryID, courseID uint) error {
	if course, ok := r.courseRepo.courses[courseID]; ok {
		course.CategoryID = &categoryID
	}
	return nil
}

func (r *fakeCategoryRepo) RemoveFromCourse(courseID uint) error {
	if course, ok := r.courseRepo.courses[courseID]; ok {
		course.CategoryID = nil
	}
	return nil
}

type fakeCounterStore struct {
	counters map[uuid.UUID]cache.Counters
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counters: map[uuid.UUID]cache.Counters{}}
}

func (s *fakeCounterStore) Get(ctx context.Context, userID uuid.UUID) (cache.Counters, error) {
	return s.counters[userID], nil
}

func (s *fakeCounterStore) SetFollowCounts(ctx context.Context, userID uuid.UUID, followers, following int64) error {
	counters := s.counters[userID]
	counters.FollowersCount = followers
	counters.FollowingCount = following
	s.counters[userID] = counters
	return nil
}

func (s *fakeCounterStore) SetPostsCount(ctx context.Context, userID uuid.UUID, posts int64) error {
	counters := s.counters[userID]
	counters.PostsCount = posts
	s.counters[userID] = counters
	return nil
}
