package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

func booking(id, marketID, vendorID, date string, sales int) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Date:          date,
		Market:        domain.MarketSnapshot{ID: marketID, Name: marketID},
		Vendor:        domain.VendorSnapshot{ID: vendorID},
		SalesQuantity: sales,
	}
}

func TestHasConflict_MarchScenario(t *testing.T) {
	existing := []*domain.Booking{booking("b1", "M1", "V1", "2024-03-01", 0)}

	assert.True(t, HasConflict(existing, "M1", "2024-03-05", ""), "4-day gap")
	assert.False(t, HasConflict(existing, "M1", "2024-03-08", ""), "exactly 7 days")
	assert.False(t, HasConflict(existing, "M1", "2024-03-09", ""), "8-day gap")
	assert.True(t, HasConflict(existing, "M1", "2024-02-24", ""), "6 days before")
	assert.False(t, HasConflict(existing, "M1", "2024-02-23", ""), "exactly 7 days before, leap year")
	assert.False(t, HasConflict(existing, "M1", "2024-03-01", "b1"), "self excluded")
}

func TestHasConflict_Symmetric(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08", "2024-01-20", "2023-12-29"}
	for _, a := range dates {
		for _, b := range dates {
			ab := HasConflict([]*domain.Booking{booking("x", "M", "V1", a, 0)}, "M", b, "")
			ba := HasConflict([]*domain.Booking{booking("y", "M", "V2", b, 0)}, "M", a, "")
			assert.Equal(t, ab, ba, "%s vs %s", a, b)
		}
	}
}

func TestHasConflict_OtherMarketIgnored(t *testing.T) {
	existing := []*domain.Booking{booking("b1", "M1", "V1", "2024-03-01", 0)}
	assert.False(t, HasConflict(existing, "M2", "2024-03-01", ""))
}

func TestHasConflict_EmptyMarketOrBadDate(t *testing.T) {
	existing := []*domain.Booking{
		booking("b1", "M1", "V1", "2024-03-01", 0),
		booking("b2", "M1", "V1", "not-a-date", 0),
	}
	assert.False(t, HasConflict(existing, "", "2024-03-01", ""))
	assert.False(t, HasConflict(existing, "M1", "03/01/2024", ""))
	assert.False(t, HasConflict(existing, "M1", "2024-04-01", ""))
}

func TestHasConflict_AcrossYearBoundary(t *testing.T) {
	existing := []*domain.Booking{booking("b1", "M1", "V1", "2023-12-28", 0)}
	assert.True(t, HasConflict(existing, "M1", "2024-01-03", ""))
	assert.False(t, HasConflict(existing, "M1", "2024-01-04", ""))
}

func TestFindConflicts_ReturnsOffenders(t *testing.T) {
	existing := []*domain.Booking{
		booking("b1", "M1", "V1", "2024-03-01", 0),
		booking("b2", "M1", "V2", "2024-03-20", 0),
		booking("b3", "M1", "V3", "2024-03-06", 0),
	}

	conflicts := FindConflicts(existing, "M1", "2024-03-04", "")
	require.Len(t, conflicts, 2)
	assert.Equal(t, "b1", conflicts[0].ID)
	assert.Equal(t, "b3", conflicts[1].ID)
}
