package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

// ExportHeaders is the fixed CSV column order; import accepts the same
// keys, so an exported file can be re-imported as-is.
var ExportHeaders = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose",
	"budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status",
}

// WriteBuyersCSV streams the buyer set as CSV. Tag sets are joined with
// commas inside one cell; unset optionals become empty cells.
func WriteBuyersCSV(w io.Writer, buyers []models.Buyer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}

	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	num := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}

	for _, b := range buyers {
		record := []string{
			b.FullName,
			str(b.Email),
			b.Phone,
			b.City,
			b.PropertyType,
			str(b.BHK),
			b.Purpose,
			num(b.BudgetMin),
			num(b.BudgetMax),
			b.Timeline,
			b.Source,
			str(b.Notes),
			strings.Join(b.Tags, ","),
			b.Status,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
