package service_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/service"
)

func TestExportImportRoundTripIsIdempotent(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)

	for i, name := range []string{"Eggs", "Rice bowl", "Steak"} {
		_, err := service.AppendMeal(src, service.MealInput{
			Name:      name,
			Calories:  200 * (i + 1),
			Protein:   10 * (i + 1),
			Timestamp: testNow.Add(time.Duration(i) * time.Hour),
		}, testNow)
		require.NoError(t, err)
	}

	data, err := service.ExportDataSnapshot(src, testNow)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, service.WriteExport(&buf, data))

	decoded, err := service.ReadExport(&buf)
	require.NoError(t, err)

	dst := newTestDB(t)
	report, err := service.ImportDataSnapshot(dst, decoded, service.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Inserted)

	want, err := service.LoadMeals(src)
	require.NoError(t, err)
	got, err := service.LoadMeals(dst)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}

	report, err = service.ImportDataSnapshot(dst, decoded, service.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 3, report.Skipped)
}

func TestImportReplaceAndDryRun(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	_, err := service.AppendMeal(db, service.MealInput{Name: "Existing", Calories: 100}, testNow)
	require.NoError(t, err)

	data, err := service.ReadExport(strings.NewReader(`{
  "version": 1,
  "meals": [
    {"id": "a", "name": "Toast", "calories": 150, "protein": 5, "carbs": 25, "fat": 3, "timestamp": "2026-03-14T08:00:00Z"},
    {"id": "b", "name": "", "calories": 10, "timestamp": "2026-03-14T07:00:00Z"}
  ]
}`))
	require.NoError(t, err)

	report, err := service.ImportDataSnapshot(db, data, service.ImportOptions{Replace: true, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Warnings, 1)
	meals, err := service.LoadMeals(db)
	require.NoError(t, err)
	assert.Len(t, meals, 1, "dry run changes nothing")

	_, err = service.ImportDataSnapshot(db, data, service.ImportOptions{Replace: true})
	require.NoError(t, err)
	meals, err = service.LoadMeals(db)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Toast", meals[0].Name)
}

func TestReadExportRejectsNewerVersion(t *testing.T) {
	t.Parallel()

	_, err := service.ReadExport(strings.NewReader(`{"version": 99, "meals": []}`))
	assert.ErrorContains(t, err, "newer than supported")
}
