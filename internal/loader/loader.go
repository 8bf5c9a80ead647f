package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"flightchat/internal/domain"
)

// The datasets ship as ISO-8859-1 CSV. Any missing required column or
// unreadable file is a startup failure; nothing here is retried.

// LoadCorpus reads the small-talk and QnA datasets and combines them into a
// single corpus, small-talk entries first.
func LoadCorpus(smallTalkPath, qnaPath string) ([]domain.QAEntry, error) {
	small, err := loadQAFile(smallTalkPath)
	if err != nil {
		return nil, err
	}
	qna, err := loadQAFile(qnaPath)
	if err != nil {
		return nil, err
	}
	return append(small, qna...), nil
}

// LoadFlights reads the flight inventory dataset.
func LoadFlights(path string) ([]domain.FlightRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flight dataset: %w", err)
	}
	defer f.Close()
	records, err := ReadFlights(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadQA parses a Question/Answer table. Questions are lowercased and empty
// cells become "Unknown".
func ReadQA(r io.Reader) ([]domain.QAEntry, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	qi, ok := header["question"]
	ai, ok2 := header["answer"]
	if !ok || !ok2 {
		return nil, fmt.Errorf("dataset must contain 'Question' and 'Answer' columns")
	}
	entries := make([]domain.QAEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.QAEntry{
			Question: strings.ToLower(cell(row, qi)),
			Answer:   cell(row, ai),
		})
	}
	return entries, nil
}

// ReadFlights parses the flight table. Required columns: Origin,
// Destination, Departure Date, Flight ID.
func ReadFlights(r io.Reader) ([]domain.FlightRecord, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	oi, ok1 := header["origin"]
	di, ok2 := header["destination"]
	ti, ok3 := header["departure date"]
	fi, ok4 := header["flight id"]
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("flight dataset must contain 'Origin', 'Destination', 'Departure Date' and 'Flight ID' columns")
	}
	records := make([]domain.FlightRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.FlightRecord{
			Origin:        cell(row, oi),
			Destination:   cell(row, di),
			DepartureDate: cell(row, ti),
			FlightID:      cell(row, fi),
		})
	}
	return records, nil
}

func loadQAFile(path string) ([]domain.QAEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	entries, err := ReadQA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func readTable(r io.Reader) (map[string]int, [][]string, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty dataset")
	}
	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

// cell returns the trimmed value at index i, or "Unknown" when the column
// is absent or blank on this row.
func cell(row []string, i int) string {
	if i >= len(row) {
		return "Unknown"
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "Unknown"
	}
	return v
}
