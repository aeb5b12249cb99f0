package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler() (*echo.Echo, *Service) {
	svc := NewService(NewInMemoryRepository(), zerolog.Nop())
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))
	return e, svc
}

func postJSON(e *echo.Echo, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAssessmentEndpoint(t *testing.T) {
	e, _ := newTestHandler()

	rec := postJSON(e, "/api/v1/assessments", scenarioInput())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var a Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if a.Energy.TargetKcal != 2272 {
		t.Errorf("TargetKcal = %d, want 2272", a.Energy.TargetKcal)
	}
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("assessment id not assigned")
	}
}

func TestCreateAssessmentValidation(t *testing.T) {
	e, _ := newTestHandler()

	in := scenarioInput()
	in.WeightKg = 0
	if rec := postJSON(e, "/api/v1/assessments", in); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestGetAssessmentEndpoint(t *testing.T) {
	e, svc := newTestHandler()
	a, _ := svc.Evaluate(context.Background(), scenarioInput())

	rec := get(e, "/api/v1/assessments/"+a.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if rec := get(e, "/api/v1/assessments/not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
	if rec := get(e, "/api/v1/assessments/00000000-0000-0000-0000-000000000001"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestListAssessmentsEndpoint(t *testing.T) {
	e, svc := newTestHandler()
	for i := 0; i < 3; i++ {
		if _, err := svc.Evaluate(context.Background(), scenarioInput()); err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
	}

	rec := get(e, "/api/v1/assessments?limit=2&offset=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data    []json.RawMessage `json:"data"`
		Total   int               `json:"total"`
		HasMore bool              `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 2 || !resp.HasMore {
		t.Errorf("total=%d len=%d has_more=%v, want 3/2/true", resp.Total, len(resp.Data), resp.HasMore)
	}
}

func TestDeleteAssessmentEndpoint(t *testing.T) {
	e, svc := newTestHandler()
	a, _ := svc.Evaluate(context.Background(), scenarioInput())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assessments/"+a.ID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	if rec := get(e, "/api/v1/assessments/"+a.ID.String()); rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", rec.Code)
	}
}

func TestFHIREndpoints(t *testing.T) {
	e, svc := newTestHandler()
	a, _ := svc.Evaluate(context.Background(), scenarioInput())

	rec := get(e, "/api/v1/assessments/"+a.ID.String()+"/fhir/nutrition-order")
	if rec.Code != http.StatusOK {
		t.Fatalf("nutrition-order status = %d, want 200", rec.Code)
	}
	var order map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal order: %v", err)
	}
	if order["resourceType"] != "NutritionOrder" {
		t.Errorf("resourceType = %v, want NutritionOrder", order["resourceType"])
	}

	rec = get(e, "/api/v1/assessments/"+a.ID.String()+"/fhir/nutrition-intake")
	if rec.Code != http.StatusOK {
		t.Fatalf("nutrition-intake status = %d, want 200", rec.Code)
	}
	var intake map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &intake); err != nil {
		t.Fatalf("unmarshal intake: %v", err)
	}
	if intake["resourceType"] != "NutritionIntake" {
		t.Errorf("resourceType = %v, want NutritionIntake", intake["resourceType"])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	e, _ := newTestHandler()

	rec := get(e, "/api/v1/exchange-catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("get catalog status = %d, want 200", rec.Code)
	}
	var body struct {
		Groups        map[string]ExchangeItem   `json:"groups"`
		GroupOrder    []string                  `json:"group_order"`
		Substitutions map[string][]Substitution `json:"substitutions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	if len(body.Groups) != len(GroupOrder) || len(body.GroupOrder) != len(GroupOrder) {
		t.Errorf("catalog groups = %d, want %d", len(body.Groups), len(GroupOrder))
	}
	if len(body.Substitutions) == 0 {
		t.Error("substitutions missing from catalog response")
	}

	// Upload an override.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "catalog.csv")
	fw.Write([]byte("group,name,kcal,carb,protein,fat,portion\nFruits,mango,70,17,1,0,1 piece\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exchange-catalog", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, want 200: %s", rec.Code, rec.Body)
	}

	// Malformed upload is rejected.
	buf.Reset()
	mw = multipart.NewWriter(&buf)
	fw, _ = mw.CreateFormFile("file", "bad.csv")
	fw.Write([]byte("group,name\nx,y\n"))
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/v1/exchange-catalog", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed upload status = %d, want 422", rec.Code)
	}

	// Missing file part.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/exchange-catalog", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", rec.Code)
	}

	// Reset restores defaults.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/exchange-catalog", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("reset status = %d, want 204", rec.Code)
	}
}

func TestReferenceFactorsEndpoint(t *testing.T) {
	e, _ := newTestHandler()

	rec := get(e, "/api/v1/reference/factors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal factors: %v", err)
	}
	if body["pal"]["moderate"] != 1.6 {
		t.Errorf("pal.moderate = %v, want 1.6", body["pal"]["moderate"])
	}
	if body["stress"]["major-burns"] != 1.8 {
		t.Errorf("stress.major-burns = %v, want 1.8", body["stress"]["major-burns"])
	}
}
