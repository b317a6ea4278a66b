package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vyaparify/internal/models"
	"vyaparify/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userRepo: mockRepo}
	s.userService = service.NewUserService(mockRepo)

	app.Get("/users/profile", withUserID(1), s.GetMyProfile)

	mockRepo.On("GetByIDWithAds", mock.Anything, uint(1), 20).
		Return(&models.User{ID: 1, Name: "Me", Ads: []models.Ad{{ID: 3, Title: "Sofa"}}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Me", out.Name)
	assert.Len(t, out.Ads, 1)
	mockRepo.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		mockSetup      func(userRepo *MockUserRepository, adRepo *MockAdRepository)
		expectedStatus int
	}{
		{
			name:    "Success",
			idParam: "1",
			mockSetup: func(userRepo *MockUserRepository, adRepo *MockAdRepository) {
				userRepo.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Name: "Seller", Email: "seller@example.com"}, nil)
				adRepo.On("GetByUserID", mock.Anything, uint(1), 20, 0).
					Return([]*models.Ad{{ID: 2, Title: "Table"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			idParam:        "abc",
			mockSetup:      func(*MockUserRepository, *MockAdRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Not Found",
			idParam: "99",
			mockSetup: func(userRepo *MockUserRepository, adRepo *MockAdRepository) {
				userRepo.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			userRepo := new(MockUserRepository)
			adRepo := new(MockAdRepository)
			s := newAdTestServer(adRepo, false)
			s.userRepo = userRepo
			s.userService = service.NewUserService(userRepo)
			app.Get("/users/:id", s.GetUser)

			tt.mockSetup(userRepo, adRepo)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.idParam, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var out struct {
					User models.PublicUser `json:"user"`
					Ads  []models.Ad       `json:"ads"`
				}
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.Equal(t, "Seller", out.User.Name)
				assert.Len(t, out.Ads, 1)
			}
			userRepo.AssertExpectations(t)
			adRepo.AssertExpectations(t)
		})
	}
}

func TestAdminDeleteUser(t *testing.T) {
	tests := []struct {
		name           string
		callerID       uint
		idParam        string
		mockSetup      func(userRepo *MockUserRepository)
		expectedStatus int
	}{
		{
			name:     "Success",
			callerID: 1,
			idParam:  "2",
			mockSetup: func(userRepo *MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				userRepo.On("Delete", mock.Anything, uint(2)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Self Delete Rejected",
			callerID:       1,
			idParam:        "1",
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "Not Found",
			callerID: 1,
			idParam:  "99",
			mockSetup: func(userRepo *MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			userRepo := new(MockUserRepository)
			s := &Server{userRepo: userRepo}
			s.userService = service.NewUserService(userRepo)
			app.Delete("/admin/users/:id", withUserID(tt.callerID), s.AdminDeleteUser)

			tt.mockSetup(userRepo)

			req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+tt.idParam, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			userRepo.AssertExpectations(t)
		})
	}
}
