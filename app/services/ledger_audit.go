package services

import (
	"database/sql"
	"log"

	"github.com/dhiee1598/vdps-sfrms/app/database"
)

// AuditLedgerTotals resums total_paid for every assessment. Resummation is a
// pure function of the paid transaction items, so re-running it is always
// safe; any drift it repairs means some earlier write skipped the ledger
// path.
func AuditLedgerTotals(db *sql.DB) error {
	ids, err := database.ListAssessmentIDs(db)
	if err != nil {
		return err
	}

	repaired := 0
	for _, id := range ids {
		before, err := database.GetAssessmentByID(db, id)
		if err != nil {
			log.Printf("ledger audit: failed to read assessment %d: %v", id, err)
			continue
		}

		total, err := database.RecomputeAssessmentTotalPaid(db, id)
		if err != nil {
			log.Printf("ledger audit: failed to resum assessment %d: %v", id, err)
			continue
		}

		if !before.TotalPaid.Equal(total) {
			repaired++
			log.Printf("ledger audit: assessment %d total_paid corrected %s -> %s",
				id, before.TotalPaid.StringFixed(2), total.StringFixed(2))
		}
	}

	log.Printf("Ledger audit completed: %d assessments checked, %d corrected", len(ids), repaired)
	return nil
}
