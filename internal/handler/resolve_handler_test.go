package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/config"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(req domain.ResolveRequest) (*domain.Resolution, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func resolveRouter(resolver *mockResolver, role string) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		})
	}
	h := NewResolveHandler(resolver, config.ContentConfig{Version: "v1", Locale: "en"})
	r.GET("/content/questionset", h.GetQuestionSet)
	r.GET("/content/results/:level", h.GetResults)
	return r
}

func TestGetQuestionSet_DefaultsFromConfig(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.MatchedBy(func(req domain.ResolveRequest) bool {
		return req.Descriptor.Kind == domain.KindQuestionSet &&
			req.Descriptor.Version == "v1" &&
			req.Descriptor.Locale == "en" &&
			!req.Preview && req.Pin == nil
	})).Return(&domain.Resolution{Document: []byte(`{}`), Source: domain.SourceFile}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/questionset", nil)
	resolveRouter(resolver, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertExpectations(t)
}

func TestGetQuestionSet_QueryOverridesAndPin(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.MatchedBy(func(req domain.ResolveRequest) bool {
		return req.Descriptor.Version == "v2" &&
			req.Descriptor.Locale == "ko" &&
			req.Pin != nil && req.Pin.RevisionID == 42 && req.Pin.Source == domain.SourceStore
	})).Return(&domain.Resolution{Document: []byte(`{}`), Source: domain.SourceStore}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/questionset?version=v2&locale=ko&pin=42", nil)
	resolveRouter(resolver, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertExpectations(t)
}

func TestGetResults_PassesLevelAndRole(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.MatchedBy(func(req domain.ResolveRequest) bool {
		return req.Descriptor.Kind == domain.KindResults &&
			req.Descriptor.Level == "high" &&
			req.Preview && req.Role == "editor"
	})).Return(&domain.Resolution{Document: []byte(`{}`), Source: domain.SourceStore}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/results/high?preview=1", nil)
	resolveRouter(resolver, "editor").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertExpectations(t)
}

func TestResolve_NoContentIs404(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything).Return(nil, common.ErrNoContent)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/results/low", nil)
	resolveRouter(resolver, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No content configured")
}

func TestResolve_AnonymousHasNoRole(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.MatchedBy(func(req domain.ResolveRequest) bool {
		return req.Role == "" && req.Preview
	})).Return(&domain.Resolution{Document: []byte(`{}`), Source: domain.SourceFile}, nil)

	w := httptest.NewRecorder()
	// preview requested without a token: the role stays empty and the
	// resolver's privilege gate decides
	req, _ := http.NewRequest("GET", "/content/questionset?preview=true", nil)
	resolveRouter(resolver, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertExpectations(t)
}
