package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
)

func TestHandleSubmitRecent(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockSubmissionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - Batch With Rejection",
			requestBody: SubmitRecentRequest{
				DiscordID: "discord-123",
				Limit:     10,
			},
			setupMock: func(m *MockSubmissionService) {
				m.On("SubmitRecent", mock.Anything, "discord-123", 10).
					Return(&submission.BatchResult{
						Username:  "jarvis",
						Processed: 2,
						Accepted:  1,
						Results: []submission.ScoreResult{
							{Accepted: true},
							{Accepted: false, Rejection: domain.ErrMsgConvertMap},
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   domain.ErrMsgConvertMap,
		},
		{
			name: "User Not Found",
			requestBody: SubmitRecentRequest{
				DiscordID: "stranger",
			},
			setupMock: func(m *MockSubmissionService) {
				m.On("SubmitRecent", mock.Anything, "stranger", 0).
					Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Invalid Request - Missing Discord ID",
			requestBody: SubmitRecentRequest{
				Limit: 10,
			},
			setupMock:      func(m *MockSubmissionService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name: "Invalid Request - Limit Too High",
			requestBody: SubmitRecentRequest{
				DiscordID: "discord-123",
				Limit:     500,
			},
			setupMock:      func(m *MockSubmissionService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockSubmissionService{}
			tt.setupMock(mockSvc)

			handler := HandleSubmitRecent(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/api/v1/submit", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockSubmissionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Success",
			query: "?discord_id=discord-123",
			setupMock: func(m *MockSubmissionService) {
				snapshot := domain.ProfileSnapshot{
					Bars:          domain.NewExpBars(),
					Balances:      domain.Balances{domain.CurrencyTaikoTokens: 42},
					UpgradeLevels: map[string]int{},
				}
				m.On("GetProfile", mock.Anything, "discord-123").Return(&snapshot, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balances"`,
		},
		{
			name:           "Missing Discord ID",
			query:          "",
			setupMock:      func(m *MockSubmissionService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing discord_id",
		},
		{
			name:  "User Not Found",
			query: "?discord_id=stranger",
			setupMock: func(m *MockSubmissionService) {
				m.On("GetProfile", mock.Anything, "stranger").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockSubmissionService{}
			tt.setupMock(mockSvc)

			handler := HandleGetProfile(mockSvc)

			req := httptest.NewRequest("GET", "/api/v1/user/profile"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}
