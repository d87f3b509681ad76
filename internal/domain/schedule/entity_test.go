package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("22:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(22*60+30), tod)
	assert.Equal(t, "22:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDay_Until(t *testing.T) {
	nine, _ := ParseTimeOfDay("09:00")
	six, _ := ParseTimeOfDay("18:00")
	two, _ := ParseTimeOfDay("02:00")
	ten, _ := ParseTimeOfDay("22:00")

	assert.Equal(t, 9*time.Hour, nine.Until(six))
	assert.Equal(t, 4*time.Hour, ten.Until(two))
	assert.Equal(t, 24*time.Hour, nine.Until(nine))
}

func TestSchedule_WindowAndNetHours(t *testing.T) {
	start, _ := ParseTimeOfDay("13:00")
	end, _ := ParseTimeOfDay("22:00")
	s := Schedule{
		Date:         time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: 60,
		Status:       StatusScheduled,
	}

	from, to := s.Window(time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC), to)
	assert.Equal(t, "8", s.NetHours().String())
}

func TestSchedule_OvernightWindow(t *testing.T) {
	start, _ := ParseTimeOfDay("22:00")
	end, _ := ParseTimeOfDay("06:00")
	s := Schedule{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), StartTime: start, EndTime: end, BreakMinutes: 30}

	from, to := s.Window(time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC), to)
	assert.Equal(t, 8*time.Hour, to.Sub(from))
	assert.Equal(t, "7.5", s.NetHours().String())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusScheduled.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("tentative").Valid())
}
