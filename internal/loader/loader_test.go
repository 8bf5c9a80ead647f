package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQA_LowercasesQuestions(t *testing.T) {
	data := "Question,Answer\nWhat Is Your Name,I'm a chatbot.\n"
	entries, err := ReadQA(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "what is your name", entries[0].Question)
	assert.Equal(t, "I'm a chatbot.", entries[0].Answer)
}

func TestReadQA_MissingColumnFails(t *testing.T) {
	data := "Question,Reply\nhi,hello\n"
	_, err := ReadQA(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Question' and 'Answer'")
}

func TestReadQA_BlankCellsBecomeUnknown(t *testing.T) {
	data := "Question,Answer\nhello,\n,hi there\n"
	entries, err := ReadQA(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Unknown", entries[0].Answer)
	assert.Equal(t, "unknown", entries[1].Question)
}

func TestReadQA_ColumnOrderIrrelevant(t *testing.T) {
	data := "Answer,Question\nHello!,greetings\n"
	entries, err := ReadQA(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "greetings", entries[0].Question)
	assert.Equal(t, "Hello!", entries[0].Answer)
}

func TestReadQA_DecodesLatin1(t *testing.T) {
	data := "Question,Answer\ncaf\xe9 nearby,Try the one on the corner.\n"
	entries, err := ReadQA(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "café nearby", entries[0].Question)
}

func TestReadFlights_ParsesRecords(t *testing.T) {
	data := "Origin,Destination,Departure Date,Flight ID\nLondon,Paris,01/05/2024,FL100\nParis,London,05/05/2024,FL200\n"
	records, err := ReadFlights(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "London", records[0].Origin)
	assert.Equal(t, "Paris", records[0].Destination)
	assert.Equal(t, "01/05/2024", records[0].DepartureDate)
	assert.Equal(t, "FL100", records[0].FlightID)
	assert.Equal(t, "FL200", records[1].FlightID)
}

func TestReadFlights_MissingColumnFails(t *testing.T) {
	data := "Origin,Destination,Flight ID\nLondon,Paris,FL100\n"
	_, err := ReadFlights(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Departure Date")
}

func TestReadFlights_EmptyInputFails(t *testing.T) {
	_, err := ReadFlights(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadCorpus_MissingFileFails(t *testing.T) {
	_, err := LoadCorpus("no_such_small_talk.csv", "no_such_qna.csv")
	assert.Error(t, err)
}

func TestLoadFlights_MissingFileFails(t *testing.T) {
	_, err := LoadFlights("no_such_flights.csv")
	assert.Error(t, err)
}
