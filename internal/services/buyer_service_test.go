package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

func TestTxTimestampHasMicrosecondResolution(t *testing.T) {
	for i := 0; i < 100; i++ {
		ts := txTimestamp()
		if ts.Nanosecond()%1000 != 0 {
			t.Fatalf("txTimestamp() = %s carries sub-microsecond digits", ts.Format(time.RFC3339Nano))
		}
	}
}

// A client edits the record it just read: it echoes the updatedAt from
// the create/update response back into PUT. That echo crosses JSON, and
// the stored value crosses TIMESTAMPTZ (microsecond resolution), so the
// two must still compare equal or every fresh edit would be rejected as
// stale.
func TestFreshUpdatedAtEchoComparesEqual(t *testing.T) {
	now := txTimestamp()
	buyer := buyerFromInput("4f9ad156-2b8e-4c52-a7cb-82f6c04c9a11", &models.BuyerInput{
		FullName:     "Rahul Sharma",
		Phone:        "9876543210",
		City:         "Mohali",
		PropertyType: "Plot",
		Purpose:      "Buy",
		Timeline:     "0-3m",
		Source:       "Website",
		Status:       "New",
	}, 7, now)

	data, err := json.Marshal(buyer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var echoed models.Buyer
	if err := json.Unmarshal(data, &echoed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// what TIMESTAMPTZ hands back on the next read
	stored := now.Truncate(time.Microsecond)
	if !stored.Equal(echoed.UpdatedAt) {
		t.Errorf("fresh echo would be rejected as stale: stored=%s echoed=%s",
			stored.Format(time.RFC3339Nano), echoed.UpdatedAt.Format(time.RFC3339Nano))
	}
}
