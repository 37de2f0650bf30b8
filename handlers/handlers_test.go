package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"citizenhub/config"
	reviewRepo "citizenhub/database/repository/review"
	serviceRepo "citizenhub/database/repository/service"
	userRepo "citizenhub/database/repository/user"
	"citizenhub/handlers"
	"citizenhub/routes"
	"citizenhub/services/directory"
	"citizenhub/services/review"
	"citizenhub/services/rules"
	"citizenhub/services/user"
	"citizenhub/utils"
)

const serviceBody = `{
	"shortName": "senior-pension",
	"name": {"en": "Senior Pension", "hi": "वरिष्ठ पेंशन"},
	"description": {"en": "Monthly pension for senior citizens"},
	"category": "welfare",
	"status": "active",
	"eligibilityCriteria": [
		{"criteriaType": "age", "name": {"en": "Age"}, "validationMethod": "minimum", "minValue": 18}
	],
	"fees": [
		{"feeType": "application", "name": {"en": "Application fee"}, "amount": 100,
		 "variableFactors": [{"factor": "income"}]}
	],
	"requiredDocuments": [
		{"documentType": "aadhar", "name": {"en": "Aadhar card"}}
	]
}`

type APISuite struct {
	suite.Suite
	router     *gin.Engine
	adminToken string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "api-test-secret"
	config.AppConfig.AdminEmails = "admin@example.gov"

	engine := rules.NewEngine(rules.DefaultFeeAdjustments())
	engine.Now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	dir := directory.NewDirectoryService(serviceRepo.NewInMemory(), engine, nil, "really-delete")

	users := userRepo.NewInMemory()
	sessions := utils.NewMemorySessionStore()
	userService := user.NewUserService(users, sessions)
	reviewService := review.NewReviewService(reviewRepo.NewInMemory(), dir, nil)

	s.router = gin.New()
	routes.RegisterRoutes(s.router, handlers.NewHandlerBundle(users, sessions, dir, userService, reviewService))

	s.adminToken = s.register("admin@example.gov", "")
	w := s.do(http.MethodPost, "/api/admin/services", serviceBody, s.adminToken, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *APISuite) TearDownTest() {
	config.AppConfig.AdminEmails = ""
}

func (s *APISuite) do(method, path, body, token string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// register signs up email and returns its token. profile is raw JSON or "".
func (s *APISuite) register(email, profile string) string {
	body := `{"name":"Test User","email":"` + email + `","password":"Sup3rSecret"`
	if profile != "" {
		body += `,"profile":` + profile
	}
	body += `}`
	w := s.do(http.MethodPost, "/api/users/register", body, "", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.decode(w)["token"].(string)
}

func (s *APISuite) TestPublicDirectory() {
	w := s.do(http.MethodGet, "/api/services?q=pension", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	list := s.decode(w)
	s.Len(list["services"], 1)

	w = s.do(http.MethodGet, "/api/services/senior-pension", "", "", map[string]string{"Accept-Language": "hi-IN,hi;q=0.9"})
	s.Require().Equal(http.StatusOK, w.Code)
	detail := s.decode(w)
	s.Equal("वरिष्ठ पेंशन", detail["name"])
	s.Equal("hi", detail["language"])

	w = s.do(http.MethodGet, "/api/services/categories", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/services/senior-pension/status/approved?lang=en", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["valid"])

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/services/nothing-here", "", "", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/services?category=spaceflight", "", "", nil).Code)
}

func (s *APISuite) TestEligibilityUsesStoredProfile() {
	w := s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("unknown", s.decode(w)["eligible"])

	w = s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", `{"age": 12}`, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(false, s.decode(w)["eligible"])

	token := s.register("citizen@example.com", `{"age": 30}`)
	w = s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", "", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(true, s.decode(w)["eligible"])

	// Body values win over the stored profile.
	w = s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", `{"age": 12}`, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(false, s.decode(w)["eligible"])

	s.Equal(http.StatusUnauthorized,
		s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", "", "bogus", nil).Code)
}

func (s *APISuite) TestEvaluationReportsProfileFields() {
	w := s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", `{"age": -1}`, "", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(s.decode(w)["fields"], "age")

	w = s.do(http.MethodPost, "/api/services/senior-pension/calculate-fees", `{"income": -5}`, "", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(s.decode(w)["fields"], "income")

	w = s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", `{"age": "old"}`, "", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.NotEmpty(s.decode(w)["error"])
}

func (s *APISuite) TestFeesAndDocuments() {
	w := s.do(http.MethodPost, "/api/services/senior-pension/calculate-fees", `{"income": 1500000}`, "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	fees := s.decode(w)
	s.InDelta(150, fees["totalAmount"].(float64), 0.001)
	s.Equal("INR", fees["currency"])

	w = s.do(http.MethodPost, "/api/services/senior-pension/validate-documents", `{"documents": []}`, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	docs := s.decode(w)
	s.Equal(false, docs["valid"])
	s.Len(docs["missingMandatory"], 1)

	w = s.do(http.MethodPost, "/api/services/senior-pension/validate-documents",
		`{"documents": [{"type": "aadhar", "file": "scan.pdf", "sizeKB": 120}]}`, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["valid"])
}

func (s *APISuite) TestInactiveServiceCannotBeEvaluated() {
	w := s.do(http.MethodPut, "/api/admin/services/senior-pension/status", `{"status":"inactive"}`, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/services/senior-pension/check-eligibility", `{"age": 30}`, "", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/services", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.decode(w)["services"])
}

func (s *APISuite) TestAdminGuards() {
	citizen := s.register("citizen@example.com", "")

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/admin/services", serviceBody, "", nil).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/admin/services", serviceBody, citizen, nil).Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/admin/services", serviceBody, s.adminToken, nil).Code)

	w := s.do(http.MethodPost, "/api/admin/services", `{"shortName":"x","name":{"en":"X"},"description":{"en":"X"},"category":"welfare"}`, s.adminToken, nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decode(w)["fields"], "shortName")

	w = s.do(http.MethodGet, "/api/admin/users", "", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["users"], 2)
}

func (s *APISuite) TestPermanentDelete() {
	path := "/api/admin/services/senior-pension/permanent"
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, path, "", s.adminToken, nil).Code)
	s.Equal(http.StatusForbidden,
		s.do(http.MethodDelete, path, "", s.adminToken, map[string]string{handlers.ConfirmDeleteHeader: "nope"}).Code)
	s.Equal(http.StatusOK,
		s.do(http.MethodDelete, path, "", s.adminToken, map[string]string{handlers.ConfirmDeleteHeader: "really-delete"}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/services/senior-pension", "", "", nil).Code)
}

func (s *APISuite) TestBatchStatus() {
	w := s.do(http.MethodGet, "/api/admin/services/senior-pension", "", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	id := s.decode(w)["id"].(string)

	w = s.do(http.MethodPost, "/api/admin/services/batch-status", `{"ids":["`+id+`"],"status":"deprecated"}`, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(float64(1), s.decode(w)["updated"])

	w = s.do(http.MethodPost, "/api/admin/services/batch-status", `{"ids":["`+id+`","ghost"],"status":"active"}`, s.adminToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestReviewsAndSession() {
	token := s.register("citizen@example.com", "")

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/services/senior-pension/reviews", `{"rating":5}`, "", nil).Code)

	w := s.do(http.MethodPost, "/api/services/senior-pension/reviews", `{"rating":5,"comment":"Easy"}`, token, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/services/senior-pension/reviews", `{"rating":4}`, token, nil).Code)
	w = s.do(http.MethodPost, "/api/services/senior-pension/reviews", `{"rating":7}`, s.adminToken, nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decode(w)["fields"], "rating")

	w = s.do(http.MethodGet, "/api/services/senior-pension/reviews", "", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["reviews"], 1)

	w = s.do(http.MethodGet, "/api/services/senior-pension", "", "", nil)
	stats := s.decode(w)["stats"].(map[string]any)
	s.Equal(float64(1), stats["reviewCount"])

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/users/me", "", token, nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/users/logout", "", token, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/users/me", "", token, nil).Code)

	w = s.do(http.MethodPost, "/api/users/login", `{"email":"citizen@example.com","password":"Sup3rSecret"}`, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusUnauthorized,
		s.do(http.MethodPost, "/api/users/login", `{"email":"citizen@example.com","password":"wrong"}`, "", nil).Code)
}
