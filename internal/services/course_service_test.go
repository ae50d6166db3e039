package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/studyshelf/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCourseRepository is an in-memory implementation of CourseRepository
type mockCourseRepository struct {
	mu      sync.Mutex
	courses map[string]models.Course
	order   []string
	err     error
	getErr  error
	pingErr error
}

func newMockCourseRepository(courses ...models.Course) *mockCourseRepository {
	m := &mockCourseRepository{courses: map[string]models.Course{}}
	for _, c := range courses {
		m.courses[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	return m
}

func (m *mockCourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := []models.Course{}
	for _, id := range m.order {
		if c, ok := m.courses[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, models.ErrCourseNotFound
	}
	return &c, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.courses[course.ID]; ok {
		return errors.New("UNIQUE constraint failed: courses.id")
	}
	m.courses[course.ID] = *course
	m.order = append(m.order, course.ID)
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepository) Ping(ctx context.Context) error {
	return m.pingErr
}

func decodeUpdate(body string) *models.UpdateCourseRequest {
	var req models.UpdateCourseRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		panic(err)
	}
	return &req
}

func strPtr(s string) *string {
	return &s
}

func TestNewCourseService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	mockRepo := newMockCourseRepository()

	svc := NewCourseService(mockRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.repo)
	assert.Equal(t, logger, svc.logger)
}

func TestCourseService_List(t *testing.T) {
	tests := []struct {
		name          string
		mockRepo      *mockCourseRepository
		expectedError bool
		expectedCount int
	}{
		{
			name:          "success",
			mockRepo:      newMockCourseRepository(models.Course{ID: "a"}, models.Course{ID: "b"}),
			expectedCount: 2,
		},
		{
			name:          "empty",
			mockRepo:      newMockCourseRepository(),
			expectedCount: 0,
		},
		{
			name: "repository error",
			mockRepo: func() *mockCourseRepository {
				m := newMockCourseRepository()
				m.err = errors.New("database error")
				return m
			}(),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCourseService(tt.mockRepo, zap.NewNop())

			result, err := svc.List(context.Background())

			if tt.expectedError {
				assert.ErrorContains(t, err, "failed to list courses")
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestCourseService_Create(t *testing.T) {
	t.Run("created course is listed with empty lessons", func(t *testing.T) {
		repo := newMockCourseRepository()
		svc := NewCourseService(repo, zap.NewNop())

		id, err := svc.Create(context.Background(), &models.CreateCourseRequest{ID: "abc123xyz", Title: "Go"})
		require.NoError(t, err)
		assert.Equal(t, "abc123xyz", id)

		courses, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "Go", courses[0].Title)
		assert.NotNil(t, courses[0].Lessons)
		assert.Empty(t, courses[0].Lessons)
	})

	t.Run("missing id is assigned", func(t *testing.T) {
		repo := newMockCourseRepository()
		svc := NewCourseService(repo, zap.NewNop())

		id, err := svc.Create(context.Background(), &models.CreateCourseRequest{Title: "Go"})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
		_, ok := repo.courses[id]
		assert.True(t, ok)
	})

	t.Run("missing title is accepted", func(t *testing.T) {
		svc := NewCourseService(newMockCourseRepository(), zap.NewNop())

		_, err := svc.Create(context.Background(), &models.CreateCourseRequest{ID: "x"})

		assert.NoError(t, err)
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		svc := NewCourseService(newMockCourseRepository(models.Course{ID: "x"}), zap.NewNop())

		_, err := svc.Create(context.Background(), &models.CreateCourseRequest{ID: "x", Title: "Again"})

		assert.ErrorContains(t, err, "UNIQUE constraint failed")
	})
}

func TestCourseService_Update(t *testing.T) {
	original := models.Course{
		ID:          "c1",
		Title:       "Old",
		Description: "Keep me",
		Lessons: models.Lessons{
			{ID: "l1", Title: "One", Type: models.LessonTypeYouTube, Content: "u1"},
		},
	}

	tests := []struct {
		name          string
		id            string
		req           *models.UpdateCourseRequest
		getErr        error
		expectedError error
		validate      func(*testing.T, models.Course)
	}{
		{
			name: "title only leaves description and lessons unchanged",
			id:   "c1",
			req:  &models.UpdateCourseRequest{Title: strPtr("X")},
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, "X", c.Title)
				assert.Equal(t, "Keep me", c.Description)
				assert.Equal(t, original.Lessons, c.Lessons)
			},
		},
		{
			name: "empty title is applied",
			id:   "c1",
			req:  &models.UpdateCourseRequest{Title: strPtr("")},
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, "", c.Title)
				assert.Equal(t, "Keep me", c.Description)
			},
		},
		{
			name: "lessons are replaced as a whole",
			id:   "c1",
			req: &models.UpdateCourseRequest{Lessons: &models.Lessons{
				{ID: "l2", Title: "Two", Type: models.LessonTypeFile, Content: "data:text/plain;base64,eA=="},
			}},
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, "Old", c.Title)
				require.Len(t, c.Lessons, 1)
				assert.Equal(t, "l2", c.Lessons[0].ID)
			},
		},
		{
			name: "empty request rewrites the same row",
			id:   "c1",
			req:  &models.UpdateCourseRequest{},
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, original, c)
			},
		},
		{
			name: "null fields decoded from JSON clear the course",
			id:   "c1",
			req:  decodeUpdate(`{"title":null,"description":null,"lessons":null}`),
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, "", c.Title)
				assert.Equal(t, "", c.Description)
				assert.Equal(t, models.Lessons{}, c.Lessons)
			},
		},
		{
			name: "null lessons alone keep the title",
			id:   "c1",
			req:  decodeUpdate(`{"lessons":null}`),
			validate: func(t *testing.T, c models.Course) {
				assert.Equal(t, "Old", c.Title)
				assert.Equal(t, models.Lessons{}, c.Lessons)
			},
		},
		{
			name:          "unknown course",
			id:            "missing",
			req:           &models.UpdateCourseRequest{Title: strPtr("X")},
			expectedError: ErrCourseNotFound,
		},
		{
			name:   "load failure is not reported as not found",
			id:     "c1",
			req:    &models.UpdateCourseRequest{Title: strPtr("X")},
			getErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockCourseRepository(original)
			repo.getErr = tt.getErr
			svc := NewCourseService(repo, zap.NewNop())

			err := svc.Update(context.Background(), tt.id, tt.req)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.getErr != nil:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrCourseNotFound)
			default:
				require.NoError(t, err)
				tt.validate(t, repo.courses[tt.id])
			}
		})
	}
}

func TestCourseService_Update_LastWriteWins(t *testing.T) {
	repo := newMockCourseRepository(models.Course{ID: "c1", Title: "Old", Lessons: models.Lessons{}})
	svc := NewCourseService(repo, zap.NewNop())
	ctx := context.Background()

	// Two clients each send the whole field they edited, from the same stale snapshot.
	require.NoError(t, svc.Update(ctx, "c1", &models.UpdateCourseRequest{Title: strPtr("First")}))
	require.NoError(t, svc.Update(ctx, "c1", &models.UpdateCourseRequest{
		Title:   strPtr("Second"),
		Lessons: &models.Lessons{{ID: "l1", Title: "L"}},
	}))

	stored := repo.courses["c1"]
	assert.Equal(t, "Second", stored.Title)
	assert.Len(t, stored.Lessons, 1)
}

func TestCourseService_Delete(t *testing.T) {
	t.Run("deleting twice succeeds", func(t *testing.T) {
		repo := newMockCourseRepository(models.Course{ID: "c1"})
		svc := NewCourseService(repo, zap.NewNop())

		assert.NoError(t, svc.Delete(context.Background(), "c1"))
		assert.NoError(t, svc.Delete(context.Background(), "c1"))
		assert.NoError(t, svc.Delete(context.Background(), "never-existed"))
		assert.Empty(t, repo.courses)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newMockCourseRepository()
		repo.err = errors.New("database error")
		svc := NewCourseService(repo, zap.NewNop())

		assert.Error(t, svc.Delete(context.Background(), "c1"))
	})
}

func TestCourseService_Health(t *testing.T) {
	repo := newMockCourseRepository()
	svc := NewCourseService(repo, zap.NewNop())
	assert.NoError(t, svc.Health(context.Background()))

	repo.pingErr = errors.New("unreachable")
	assert.Error(t, svc.Health(context.Background()))
}
