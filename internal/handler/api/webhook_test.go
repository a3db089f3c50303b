//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"slotgate/internal/handler/api"
	"slotgate/internal/pkg/errs"
	"slotgate/internal/usecase/commands"
	commandsmock "slotgate/tests/mock/commands"
)

// stubVerifier stands in for the Stripe gateway: it accepts exactly one
// signature value and returns a canned event.
type stubVerifier struct {
	signature string
	event     commands.ProviderEvent
}

func (v *stubVerifier) VerifyAndParse(_ []byte, sigHeader string) (commands.ProviderEvent, error) {
	if sigHeader != v.signature {
		return commands.ProviderEvent{}, errs.New("signature verification failed")
	}
	return v.event, nil
}

type WebhookHandlerTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	reconciler *commandsmock.MockWebhookCommands
	verifier   *stubVerifier
	router     *gin.Engine
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.reconciler = commandsmock.NewMockWebhookCommands(s.mockCtrl)
	s.verifier = &stubVerifier{
		signature: "t=1700000000,v1=valid",
		event: commands.ProviderEvent{
			ID:        "evt_1",
			Type:      commands.EventCheckoutCompleted,
			SessionID: "cs_1",
		},
	}

	handler := api.NewWebhookHandler(s.verifier, s.reconciler)
	s.router = gin.New()
	s.router.POST("/webhook", handler.Handle)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) post(signature string) *httptest.ResponseRecorder {
	body := bytes.NewBufferString(`{"id":"evt_1","type":"checkout.session.completed"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", body)
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *WebhookHandlerTestSuite) TestHandle() {
	s.Run("検証済みイベントは200で受理される", func() {
		s.reconciler.EXPECT().HandleEvent(gomock.Any(), s.verifier.event).Return(nil)

		w := s.post(s.verifier.signature)
		s.Equal(http.StatusOK, w.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(true, resp["received"])
		s.Equal(string(commands.EventCheckoutCompleted), resp["event"])
	})

	s.Run("署名不正は400で拒否されリコンサイラに届かない", func() {
		w := s.post("t=1700000000,v1=forged")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "Invalid signature")
	})

	s.Run("署名ヘッダ欠落も400", func() {
		w := s.post("")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("リコンサイル失敗は500でプロバイダに再送させる", func() {
		s.reconciler.EXPECT().HandleEvent(gomock.Any(), s.verifier.event).
			Return(commands.ErrRecordCommit)

		w := s.post(s.verifier.signature)
		s.Equal(http.StatusInternalServerError, w.Code)
		s.Contains(w.Body.String(), "Event processing failed")
	})
}
