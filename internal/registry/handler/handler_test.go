package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lostfound/internal/events"
	"lostfound/internal/registry"
	"lostfound/internal/registry/handler/mocks"
	dErrors "lostfound/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks

const testCaller = "reporter-123"

// staticValidator accepts any bearer token and reports a fixed identity.
type staticValidator struct {
	reporterID string
	err        error
}

func (v staticValidator) ValidateToken(string) (string, error) {
	return v.reporterID, v.err
}

type HandlerSuite struct {
	suite.Suite
	router   chi.Router
	registry *mocks.MockService
	eventLog *mocks.MockEventLog
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.registry = mocks.NewMockService(ctrl)
	s.eventLog = mocks.NewMockEventLog(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.registry, s.eventLog, staticValidator{reporterID: testCaller}, logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if authenticated {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func validCreateBody() CreateReportRequest {
	return CreateReportRequest{
		Kind:          "lost",
		Category:      "backpack",
		Description:   "black backpack",
		FeatureDigest: strings.Repeat("ab", registry.DigestSize),
		Confidence:    9000,
		Location:      "main station",
	}
}

func (s *HandlerSuite) TestCreateReport() {
	s.registry.EXPECT().
		CreateReport(gomock.Any(), gomock.Any(), testCaller).
		DoAndReturn(func(_ context.Context, input registry.CreateReportInput, _ string) (int64, error) {
			s.Equal(registry.KindLost, input.Kind)
			s.Equal("backpack", input.Category)
			s.Equal(9000, input.Confidence)
			return 1, nil
		})

	w := s.do(http.MethodPost, "/reports", validCreateBody(), true)

	s.Equal(http.StatusCreated, w.Code)
	var resp CreateReportResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(1), resp.ID)
}

func (s *HandlerSuite) TestCreateReportRequiresAuth() {
	w := s.do(http.MethodPost, "/reports", validCreateBody(), false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestCreateReportInvalidDigest() {
	body := validCreateBody()
	body.FeatureDigest = "zz"

	w := s.do(http.MethodPost, "/reports", body, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"bad_request"}`, w.Body.String())
}

func (s *HandlerSuite) TestCreateReportInvalidConfidence() {
	s.registry.EXPECT().
		CreateReport(gomock.Any(), gomock.Any(), testCaller).
		Return(int64(0), dErrors.New(dErrors.CodeInvalidConfidence, "confidence must be in [0, 10000]"))

	body := validCreateBody()
	body.Confidence = 10001

	w := s.do(http.MethodPost, "/reports", body, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"invalid_confidence"}`, w.Body.String())
}

func (s *HandlerSuite) TestGetReport() {
	report := registry.Report{
		ID:               3,
		ReporterIdentity: testCaller,
		Kind:             registry.KindFound,
		Category:         "wallet",
		Confidence:       9100,
		Status:           registry.StatusOpen,
	}
	s.registry.EXPECT().GetReport(gomock.Any(), int64(3)).Return(report, nil)

	w := s.do(http.MethodGet, "/reports/3", nil, false)

	s.Equal(http.StatusOK, w.Code)
	var resp ReportResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(3), resp.ID)
	s.Equal("found", resp.Kind)
	s.Equal("wallet", resp.Category)
	s.Equal("open", resp.Status)
}

func (s *HandlerSuite) TestGetReportNotFound() {
	s.registry.EXPECT().
		GetReport(gomock.Any(), int64(42)).
		Return(registry.Report{}, dErrors.New(dErrors.CodeNotFound, "unknown report id"))

	w := s.do(http.MethodGet, "/reports/42", nil, false)

	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"not_found"}`, w.Body.String())
}

func (s *HandlerSuite) TestGetReportBadID() {
	w := s.do(http.MethodGet, "/reports/abc", nil, false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestScan() {
	s.registry.EXPECT().ScanForMatches(gomock.Any(), int64(2)).Return(nil)

	w := s.do(http.MethodPost, "/reports/2/scan", nil, true)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *HandlerSuite) TestInitiateClaim() {
	s.registry.EXPECT().InitiateClaim(gomock.Any(), int64(1), int64(2), testCaller).Return(nil)

	w := s.do(http.MethodPost, "/claims", ClaimRequest{LostID: 1, FoundID: 2}, true)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestInitiateClaimUnauthorizedCaller() {
	s.registry.EXPECT().
		InitiateClaim(gomock.Any(), int64(1), int64(2), testCaller).
		Return(dErrors.New(dErrors.CodeUnauthorized, "only the lost report's owner may initiate a claim"))

	w := s.do(http.MethodPost, "/claims", ClaimRequest{LostID: 1, FoundID: 2}, true)

	s.Equal(http.StatusForbidden, w.Code)
	s.JSONEq(`{"error":"unauthorized"}`, w.Body.String())
}

func (s *HandlerSuite) TestConfirmHandover() {
	s.registry.EXPECT().ConfirmHandover(gomock.Any(), int64(1), int64(2), testCaller).Return(nil)

	w := s.do(http.MethodPost, "/claims/handover", ClaimRequest{LostID: 1, FoundID: 2}, true)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestConfirmHandoverNotMatched() {
	s.registry.EXPECT().
		ConfirmHandover(gomock.Any(), int64(1), int64(2), testCaller).
		Return(dErrors.New(dErrors.CodeNotMatched, "reports are not a matched pair"))

	w := s.do(http.MethodPost, "/claims/handover", ClaimRequest{LostID: 1, FoundID: 2}, true)

	s.Equal(http.StatusConflict, w.Code)
	s.JSONEq(`{"error":"not_matched"}`, w.Body.String())
}

func (s *HandlerSuite) TestListEvents() {
	s.eventLog.EXPECT().Recent(100).Return([]events.Event{
		{Type: events.TypeReportCreated, ReportID: 1},
		{Type: events.TypePotentialMatch, LostID: 1, FoundID: 2, Score: 9050},
	})

	w := s.do(http.MethodGet, "/events", nil, false)

	s.Equal(http.StatusOK, w.Code)
	var resp EventsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Events, 2)
	s.Equal(events.TypePotentialMatch, resp.Events[1].Type)
}

func (s *HandlerSuite) TestListEventsCustomLimit() {
	s.eventLog.EXPECT().Recent(5).Return(nil)

	w := s.do(http.MethodGet, "/events?limit=5", nil, false)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerSuite) TestInvalidTokenRejected() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.registry, s.eventLog, staticValidator{err: errors.New("expired")}, logger)
	router := chi.NewRouter()
	h.Register(router)

	req := httptest.NewRequest(http.MethodPost, "/reports", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}
