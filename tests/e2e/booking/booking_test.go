//go:build e2e

package booking_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	gohttptest "net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	reqdto "slotgate/internal/handler/dto/request"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/pkg/jwt"
	"slotgate/tests/common/builder"
	"slotgate/tests/common/dbtest"
	"slotgate/tests/common/httptest"
	"slotgate/tests/e2e"
)

const (
	availabilityURL = "/api/availability"
	checkoutURL     = "/api/checkout/appointments"
	confirmationURL = "/api/checkout/confirmation"
	webhookURL      = "/webhook"
	workingHoursURL = "/api/admin/working-hours"
	blockedDatesURL = "/api/admin/blocked-dates"
	appointmentsURL = "/api/admin/appointments"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

// targetDate is far enough out that the availability grid never disables it
// as a past date.
func (s *BookingSuite) targetDate() time.Time {
	return time.Now().AddDate(0, 0, 14)
}

func (s *BookingSuite) openWeekday(date time.Time, token string) {
	t := s.T()
	body := reqdto.UpsertWorkingHoursRequest{
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 60,
	}
	url := fmt.Sprintf("%s/%d", workingHoursURL, int(date.Weekday()))
	w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, body, token)
	require.Equal(t, http.StatusNoContent, w.Code, "営業時間の登録に失敗")
}

func (s *BookingSuite) initiateCheckout(date time.Time, slot string) string {
	t := s.T()
	b := builder.NewAppointmentBuilder()
	b.Date = date.Format("2006-01-02")
	b.Time = slot
	b.Email = "taro@example.com"

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, b.BuildCheckoutRequestDTO(), "")
	require.Equal(t, http.StatusOK, w.Code, "チェックアウト開始に失敗: %s", w.Body.String())

	var resp resdto.CheckoutResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	require.NotEmpty(t, resp.RedirectURL)

	return s.Gateway.LastSessionID()
}

func (s *BookingSuite) postWebhook(body, signature string) *gohttptest.ResponseRecorder {
	req := gohttptest.NewRequest(http.MethodPost, webhookURL, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := gohttptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *BookingSuite) deliverCompleted(sessionID string) *gohttptest.ResponseRecorder {
	body := fmt.Sprintf(`{"id":"evt_%s","type":"checkout.session.completed","session_id":"%s","payment_id":"pi_%s"}`,
		sessionID, sessionID, sessionID)
	return s.postWebhook(body, e2e.StubSignature)
}

func (s *BookingSuite) appointmentStatus(sessionID string) string {
	var status string
	err := s.DB.QueryRow(context.Background(),
		"SELECT status FROM appointments WHERE provider_session_id = $1", sessionID).Scan(&status)
	require.NoError(s.T(), err, "予約レコードの取得に失敗")
	return status
}

func (s *BookingSuite) TestBookingFlow() {
	s.Run("決済完了で予約が確定し確認APIで参照できる", func() {
		t := s.T()
		token := s.AdminToken()
		date := s.targetDate()
		s.openWeekday(date, token)

		// the configured window exposes its slots
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			availabilityURL+"?date="+date.Format("2006-01-02"), nil, "")
		var slots resdto.DaySlotsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &slots)
		require.Equal(t, []string{"09:00", "10:00", "11:00"}, slots.Slots)

		sessionID := s.initiateCheckout(date, "10:00")

		// no record exists until the provider confirms payment
		count, err := dbtest.CountRows(s.DB, "appointments")
		require.NoError(t, err)
		require.Zero(t, count, "決済前にレコードが作られている")

		w2 := s.deliverCompleted(sessionID)
		require.Equal(t, http.StatusOK, w2.Code, "webhook処理に失敗: %s", w2.Body.String())
		require.Equal(t, "confirmed", s.appointmentStatus(sessionID))

		// the success page polls this endpoint
		w3 := httptest.PerformRequest(t, s.Router, http.MethodGet,
			confirmationURL+"?session_id="+sessionID, nil, "")
		var confirmation struct {
			Type   string                     `json:"type"`
			Record resdto.AppointmentResponse `json:"record"`
		}
		httptest.AssertSuccessResponse(t, w3, http.StatusOK, &confirmation)
		require.Equal(t, "appointment", confirmation.Type)
		require.Equal(t, "10:00", confirmation.Record.Time)

		// the booked slot disappears from availability
		w4 := httptest.PerformRequest(t, s.Router, http.MethodGet,
			availabilityURL+"?date="+date.Format("2006-01-02"), nil, "")
		httptest.AssertSuccessResponse(t, w4, http.StatusOK, &slots)
		require.Equal(t, []string{"09:00", "11:00"}, slots.Slots)

		sent := s.Dispatcher.Sent()
		require.Len(t, sent, 1)
		require.Equal(t, "appointment_confirmed", sent[0].Kind)
		require.Equal(t, "taro@example.com", sent[0].Recipient)
	})

	s.Run("重複配信でもレコードは1件のまま", func() {
		t := s.T()
		token := s.AdminToken()
		date := s.targetDate()
		s.openWeekday(date, token)

		sessionID := s.initiateCheckout(date, "09:00")
		require.Equal(t, http.StatusOK, s.deliverCompleted(sessionID).Code)
		require.Equal(t, http.StatusOK, s.deliverCompleted(sessionID).Code)

		count, err := dbtest.CountRows(s.DB, "appointments")
		require.NoError(t, err)
		require.EqualValues(t, 1, count, "重複配信でレコードが増えている")
	})

	s.Run("スロット競合の後払い予約はpending_reviewで確定する", func() {
		t := s.T()
		token := s.AdminToken()
		date := s.targetDate()
		s.openWeekday(date, token)

		// two buyers pay for the same slot; the second one still gets a
		// record, flagged for manual review
		first := s.initiateCheckout(date, "11:00")
		second := s.initiateCheckout(date, "11:00")

		require.Equal(t, http.StatusOK, s.deliverCompleted(first).Code)
		require.Equal(t, http.StatusOK, s.deliverCompleted(second).Code)

		require.Equal(t, "confirmed", s.appointmentStatus(first))
		require.Equal(t, "pending_review", s.appointmentStatus(second))

		// the admin resolves the flag through the back office
		var id uuid.UUID
		require.NoError(t, s.DB.QueryRow(context.Background(),
			"SELECT id FROM appointments WHERE provider_session_id = $1", second).Scan(&id))

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			appointmentsURL+"/"+id.String(), reqdto.UpdateStatusRequest{Status: "cancelled"}, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "cancelled", s.appointmentStatus(second))
	})

	s.Run("期限切れセッションはレコードを作らない", func() {
		t := s.T()
		token := s.AdminToken()
		date := s.targetDate()
		s.openWeekday(date, token)

		sessionID := s.initiateCheckout(date, "09:00")
		body := fmt.Sprintf(`{"id":"evt_exp","type":"checkout.session.expired","session_id":"%s"}`, sessionID)
		require.Equal(t, http.StatusOK, s.postWebhook(body, e2e.StubSignature).Code)

		count, err := dbtest.CountRows(s.DB, "appointments")
		require.NoError(t, err)
		require.Zero(t, count)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			confirmationURL+"?session_id="+sessionID, nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("署名不正のwebhookは処理されない", func() {
		t := s.T()
		w := s.postWebhook(`{"id":"evt_forged","type":"checkout.session.completed","session_id":"cs_x"}`, "forged")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *BookingSuite) TestScheduleAdministration() {
	s.Run("休業日を指定すると空き枠が消える", func() {
		t := s.T()
		token := s.AdminToken()
		date := s.targetDate()
		s.openWeekday(date, token)

		dateStr := date.Format("2006-01-02")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedDatesURL,
			reqdto.BlockDateRequest{Date: dateStr, Reason: "臨時休業"}, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		var slots resdto.DaySlotsResponse
		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL+"?date="+dateStr, nil, "")
		httptest.AssertSuccessResponse(t, w2, http.StatusOK, &slots)
		require.Empty(t, slots.Slots)

		// unblocking restores the window
		w3 := httptest.PerformRequest(t, s.Router, http.MethodDelete, blockedDatesURL+"/"+dateStr, nil, token)
		require.Equal(t, http.StatusNoContent, w3.Code)

		w4 := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL+"?date="+dateStr, nil, "")
		httptest.AssertSuccessResponse(t, w4, http.StatusOK, &slots)
		require.Len(t, slots.Slots, 3)
	})

	s.Run("管理APIは管理者トークン必須", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		viewerToken, err := jwt.NewService(s.Config.JWT.Secret).GenerateToken(uuid.New(), "viewer", time.Hour)
		require.NoError(t, err)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, viewerToken)
		require.Equal(t, http.StatusForbidden, w2.Code)
	})
}
