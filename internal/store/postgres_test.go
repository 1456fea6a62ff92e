package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreHalls(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	roomTypes := `[{"name":"standard","ensuite":false,"tenancyWeeks":39,"prices":[{"year":"2024/25","perWeekAmount":120.5}]}]`

	rows := sqlmock.NewRows([]string{
		"name", "short_description", "address", "catering_type",
		"tags", "lifestyle_tags", "facilities", "room_features_common", "services",
		"room_types", "official_url", "contact_email", "contact_phone",
	}).
		AddRow("Butler Court", "Close to campus", "Epinal Way", "self-catered",
			[]byte("{budget,close_to_campus}"), []byte("{social}"), []byte("{laundry}"), []byte("{desk}"), []byte("{}"),
			[]byte(roomTypes), "https://example.ac.uk/butler", "halls@example.ac.uk", "01509 000000").
		AddRow("Falkner Eggington", "", "", "",
			[]byte("{}"), []byte("{}"), []byte("{}"), []byte("{}"), []byte("{}"),
			nil, "", "", "")

	mock.ExpectQuery("SELECT name, short_description").WillReturnRows(rows)

	s := NewPostgresStore(db)
	halls, err := s.Halls(context.Background())
	require.NoError(t, err)
	require.Len(t, halls, 2)

	assert.Equal(t, "Butler Court", halls[0].Name)
	assert.Equal(t, []string{"budget", "close_to_campus"}, halls[0].Tags)
	require.Len(t, halls[0].RoomTypes, 1)
	assert.Equal(t, "standard", halls[0].RoomTypes[0].Name)
	price, ok := halls[0].RoomTypes[0].CurrentPrice()
	require.True(t, ok)
	assert.Equal(t, "2024/25", price.Year)
	require.NotNil(t, price.PerWeekAmount)
	assert.Equal(t, 120.5, *price.PerWeekAmount)
	assert.Nil(t, price.TotalAmount)

	// Row order is preserved: collection order drives matching downstream.
	assert.Equal(t, "Falkner Eggington", halls[1].Name)
	assert.Empty(t, halls[1].RoomTypes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreHallsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, short_description").WillReturnError(assert.AnError)

	s := NewPostgresStore(db)
	_, err = s.Halls(context.Background())
	assert.Error(t, err)
}

func TestPostgresStoreIntentDocuments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"intent", "patterns"}).
		AddRow("ask_location", []byte(`[{"regex":"\\bwhere is\\b","flags":["IGNORECASE"]}]`)).
		AddRow("ask_accommodation", []byte(`[{"regex":"\\bhalls?\\b"}]`))

	mock.ExpectQuery("SELECT intent, patterns").WillReturnRows(rows)

	s := NewPostgresStore(db)
	docs, err := s.IntentDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "ask_location", docs[0].Intent)
	require.Len(t, docs[0].Patterns, 1)
	assert.Equal(t, []string{"IGNORECASE"}, docs[0].Patterns[0].Flags)
}

func TestPostgresStoreGazetteerDocuments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"slot_type", "items"}).
		AddRow("building", []byte(`[{"canonical":"pilkington library","aliases":["library"]}]`))

	mock.ExpectQuery("SELECT slot_type, items").WillReturnRows(rows)

	s := NewPostgresStore(db)
	docs, err := s.GazetteerDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "building", docs[0].SlotType)
	assert.Equal(t, "pilkington library", docs[0].Items[0].Canonical)
}
