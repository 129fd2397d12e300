package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

// csvRow is the flattened CSV representation of a transaction. Shares are
// rendered as "Name=Amount" pairs joined with '|'.
type csvRow struct {
	ID              string `csv:"ID"`
	ProductName     string `csv:"Product"`
	Description     string `csv:"Description"`
	Amount          string `csv:"Amount"`
	OrderDate       string `csv:"Order Date"`
	PaymentPlan     string `csv:"Plan"`
	TotalMonths     int    `csv:"Months"`
	MonthlyPayment  string `csv:"Monthly Payment"`
	Mode            string `csv:"Mode"`
	Borrowers       string `csv:"Borrowers"`
	StartCycleIndex int    `csv:"Start Cycle"`
}

// WriteTransactionsCSV writes the transactions to a CSV file using the
// given delimiter.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string, delimiter rune) error {
	rows := make([]csvRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = toCSVRow(tx)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = delimiter
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Wrote transactions CSV")
	return nil
}

func toCSVRow(tx models.Transaction) csvRow {
	row := csvRow{
		ID:              tx.ID,
		ProductName:     tx.ProductName,
		Description:     tx.Description,
		Amount:          tx.Amount.StringFixed(2),
		OrderDate:       tx.OrderDate.String(),
		PaymentPlan:     string(tx.PaymentPlan),
		TotalMonths:     tx.TotalMonths,
		Mode:            string(tx.Mode),
		StartCycleIndex: tx.StartCycleIndex,
	}
	if !tx.MonthlyPayment.IsZero() {
		row.MonthlyPayment = tx.MonthlyPayment.StringFixed(2)
	}
	if tx.IsShared() {
		parts := make([]string, len(tx.Shares))
		for i, share := range tx.Shares {
			parts[i] = fmt.Sprintf("%s=%s", share.Borrower, share.AmountPerCycle.StringFixed(2))
		}
		row.Borrowers = strings.Join(parts, "|")
	} else {
		row.Borrowers = tx.Borrower
	}
	return row
}
