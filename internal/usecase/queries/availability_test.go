//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"slotgate/internal/domain/schedule"
	"slotgate/internal/pkg/clock"
	"slotgate/internal/usecase/queries"
	queriesmock "slotgate/tests/mock/queries"
)

type AvailabilityQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	store    *queriesmock.MockScheduleReadStore
	clock    *clock.MockClock
	queries  queries.AvailabilityQueries
}

func (s *AvailabilityQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockScheduleReadStore(s.mockCtrl)
	// 2026-03-02 is a Monday
	s.clock = clock.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewAvailabilityQueries(s.store, s.clock)
}

func (s *AvailabilityQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityQueriesSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityQueriesTestSuite))
}

func mustTime(s *AvailabilityQueriesTestSuite, v string) schedule.TimeOfDay {
	t, err := schedule.ParseTimeOfDay(v)
	s.Require().NoError(err)
	return t
}

func weekdayRule(s *AvailabilityQueriesTestSuite, dow time.Weekday, start, end string, slotMinutes int) schedule.WorkingHourRule {
	return schedule.WorkingHourRule{
		ID:           uuid.New(),
		DayOfWeek:    dow,
		StartTime:    mustTime(s, start),
		EndTime:      mustTime(s, end),
		SlotDuration: slotMinutes,
		IsActive:     true,
	}
}

func (s *AvailabilityQueriesTestSuite) TestDaySlots() {
	ctx := context.Background()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	s.Run("予約済みスロットが候補から除外される", func() {
		rule := weekdayRule(s, time.Monday, "09:00", "12:00", 60)

		s.store.EXPECT().RuleForWeekday(ctx, time.Monday).Return(&rule, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, monday, monday).Return(nil, nil)
		s.store.EXPECT().BookedTimes(ctx, monday).Return([]schedule.TimeOfDay{mustTime(s, "10:00")}, nil)

		slots, err := s.queries.DaySlots(ctx, monday)
		s.NoError(err)
		s.Equal([]schedule.TimeOfDay{mustTime(s, "09:00"), mustTime(s, "11:00")}, slots)
	})

	s.Run("定休日はスロットゼロ", func() {
		s.store.EXPECT().RuleForWeekday(ctx, time.Monday).Return(nil, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, monday, monday).Return(nil, nil)
		s.store.EXPECT().BookedTimes(ctx, monday).Return(nil, nil)

		slots, err := s.queries.DaySlots(ctx, monday)
		s.NoError(err)
		s.Empty(slots)
	})

	s.Run("休業指定日はルールがあってもスロットゼロ", func() {
		rule := weekdayRule(s, time.Monday, "09:00", "12:00", 60)

		s.store.EXPECT().RuleForWeekday(ctx, time.Monday).Return(&rule, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, monday, monday).
			Return([]schedule.BlockedDate{{ID: uuid.New(), Date: monday, Reason: "maintenance"}}, nil)
		s.store.EXPECT().BookedTimes(ctx, monday).Return(nil, nil)

		slots, err := s.queries.DaySlots(ctx, monday)
		s.NoError(err)
		s.Empty(slots)
	})
}

func (s *AvailabilityQueriesTestSuite) TestDayGrid() {
	ctx := context.Background()

	s.Run("営業日と休業日が正しく並ぶ", func() {
		// Sun 03-01 (no rule) .. Wed 03-04 (no rule); Tue 03-03 is blocked
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

		s.store.EXPECT().ListRules(ctx).Return([]schedule.WorkingHourRule{
			weekdayRule(s, time.Monday, "09:00", "11:00", 60),
			weekdayRule(s, time.Tuesday, "09:00", "10:00", 60),
		}, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, from, to).
			Return([]schedule.BlockedDate{{ID: uuid.New(), Date: tuesday}}, nil)
		// only the one open, unblocked day hits the booked-times query
		s.store.EXPECT().BookedTimes(ctx, monday).Return(nil, nil)

		grid, err := s.queries.DayGrid(ctx, from, to)
		s.NoError(err)
		s.Require().Len(grid, 4)

		s.Equal("2026-03-01", grid[0].Date)
		s.True(grid[0].Disabled)

		s.Equal("2026-03-02", grid[1].Date)
		s.False(grid[1].Disabled)
		s.Equal([]schedule.TimeOfDay{mustTime(s, "09:00"), mustTime(s, "10:00")}, grid[1].Slots)

		s.Equal("2026-03-03", grid[2].Date)
		s.True(grid[2].Disabled)
		s.Empty(grid[2].Slots)

		s.Equal("2026-03-04", grid[3].Date)
		s.True(grid[3].Disabled)
	})

	s.Run("過去日は営業ルールがあっても無効", func() {
		// clock says today is 03-02; the grid starts the Monday before
		from := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)

		s.store.EXPECT().ListRules(ctx).Return([]schedule.WorkingHourRule{
			weekdayRule(s, time.Monday, "09:00", "11:00", 60),
		}, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, from, from).Return(nil, nil)

		grid, err := s.queries.DayGrid(ctx, from, from)
		s.NoError(err)
		s.Require().Len(grid, 1)
		s.True(grid[0].Disabled)
		s.Empty(grid[0].Slots)
	})

	s.Run("全スロット予約済みの日は無効として返る", func() {
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		s.store.EXPECT().ListRules(ctx).Return([]schedule.WorkingHourRule{
			weekdayRule(s, time.Monday, "09:00", "11:00", 60),
		}, nil)
		s.store.EXPECT().BlockedDatesBetween(ctx, monday, monday).Return(nil, nil)
		s.store.EXPECT().BookedTimes(ctx, monday).
			Return([]schedule.TimeOfDay{mustTime(s, "09:00"), mustTime(s, "10:00")}, nil)

		grid, err := s.queries.DayGrid(ctx, monday, monday)
		s.NoError(err)
		s.Require().Len(grid, 1)
		s.True(grid[0].Disabled)
		s.Empty(grid[0].Slots)
	})

	s.Run("終了日が開始日より前ならエラー", func() {
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := s.queries.DayGrid(ctx, from, to)
		s.ErrorIs(err, queries.ErrBadDateRange)
	})

	s.Run("広すぎる範囲は拒否される", func() {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 120)

		_, err := s.queries.DayGrid(ctx, from, to)
		s.ErrorIs(err, queries.ErrBadDateRange)
	})
}
