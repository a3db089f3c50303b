//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"slotgate/internal/domain/booking"
	"slotgate/internal/pkg/chunkmeta"
	"slotgate/internal/pkg/config"
	"slotgate/internal/pkg/errs"
	"slotgate/internal/usecase/commands"
	commandsmock "slotgate/tests/mock/commands"
)

type CheckoutCommandsTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	provider *commandsmock.MockCheckoutProvider
	checkout commands.CheckoutCommands
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.provider = commandsmock.NewMockCheckoutProvider(s.mockCtrl)
	s.checkout = commands.NewCheckoutCommands(s.provider, config.NewTestConfig())
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

func validAppointmentPayload() *booking.AppointmentPayload {
	return &booking.AppointmentPayload{
		Name:     "山田太郎",
		Email:    "taro@example.com",
		Phone:    "090-1234-5678",
		Services: []string{"haircut", "color"},
		Date:     "2026-02-10",
		Time:     "14:00",
	}
}

func (s *CheckoutCommandsTestSuite) TestInitiateAppointment() {
	ctx := context.Background()

	s.Run("正常なペイロードでリダイレクトURLが返る", func() {
		payload := validAppointmentPayload()

		s.provider.EXPECT().CreateSession(ctx, gomock.Any(), commands.PriceSpec{
			Name:        "Appointment deposit",
			Currency:    "usd",
			AmountCents: 5000,
		}).DoAndReturn(
			func(_ context.Context, metadata map[string]string, _ commands.PriceSpec) (*commands.CheckoutSession, error) {
				s.Equal(string(booking.KindAppointment), chunkmeta.Kind(metadata))
				var decoded booking.AppointmentPayload
				s.NoError(chunkmeta.Decode(metadata, &decoded))
				s.Equal(*payload, decoded)
				return &commands.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
			})

		url, err := s.checkout.InitiateAppointment(ctx, payload)
		s.NoError(err)
		s.Equal("https://checkout.example/cs_1", url)
	})

	s.Run("長い備考はチャンク分割されて往復する", func() {
		payload := validAppointmentPayload()
		payload.Description = strings.Repeat("要望の詳細。", 300)

		s.provider.EXPECT().CreateSession(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, metadata map[string]string, _ commands.PriceSpec) (*commands.CheckoutSession, error) {
				raw, err := json.Marshal(payload)
				s.Require().NoError(err)
				s.Greater(len(raw), chunkmeta.ChunkSize)
				s.Contains(metadata, "data_1")
				for _, v := range metadata {
					s.LessOrEqual(len(v), chunkmeta.ChunkSize)
				}
				var decoded booking.AppointmentPayload
				s.NoError(chunkmeta.Decode(metadata, &decoded))
				s.Equal(payload.Description, decoded.Description)
				return &commands.CheckoutSession{ID: "cs_2", URL: "https://checkout.example/cs_2"}, nil
			})

		_, err := s.checkout.InitiateAppointment(ctx, payload)
		s.NoError(err)
	})

	s.Run("バリデーション不合格ではプロバイダを呼ばない", func() {
		payload := validAppointmentPayload()
		payload.Email = "not-an-email"

		url, err := s.checkout.InitiateAppointment(ctx, payload)
		s.ErrorIs(err, commands.ErrInvalidPayload)
		s.ErrorIs(err, booking.ErrInvalidEmail)
		s.Empty(url)
	})

	s.Run("プロバイダ障害はErrProviderUnavailableになる", func() {
		s.provider.EXPECT().CreateSession(ctx, gomock.Any(), gomock.Any()).
			Return(nil, errs.New("stripe: 503"))

		url, err := s.checkout.InitiateAppointment(ctx, validAppointmentPayload())
		s.ErrorIs(err, commands.ErrProviderUnavailable)
		s.Empty(url)
	})
}

func (s *CheckoutCommandsTestSuite) TestInitiateListing() {
	ctx := context.Background()

	payload := &booking.ListingPayload{
		Name:      "鈴木花子",
		Email:     "hanako@example.com",
		Phone:     "080-0000-1111",
		Title:     "Sunny 2LDK near the station",
		Address:   "Shibuya 1-2-3",
		Rooms:     2,
		RentCents: 15000000,
	}

	s.Run("掲載料の価格設定でセッションが作られる", func() {
		s.provider.EXPECT().CreateSession(ctx, gomock.Any(), commands.PriceSpec{
			Name:        "Listing publication fee",
			Currency:    "usd",
			AmountCents: 2900,
		}).DoAndReturn(
			func(_ context.Context, metadata map[string]string, _ commands.PriceSpec) (*commands.CheckoutSession, error) {
				s.Equal(string(booking.KindListing), chunkmeta.Kind(metadata))
				return &commands.CheckoutSession{ID: "cs_3", URL: "https://checkout.example/cs_3"}, nil
			})

		url, err := s.checkout.InitiateListing(ctx, payload)
		s.NoError(err)
		s.Equal("https://checkout.example/cs_3", url)
	})

	s.Run("家賃ゼロは弾かれる", func() {
		bad := *payload
		bad.RentCents = 0

		_, err := s.checkout.InitiateListing(ctx, &bad)
		s.ErrorIs(err, commands.ErrInvalidPayload)
		s.ErrorIs(err, booking.ErrInvalidRent)
	})
}
