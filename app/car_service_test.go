package app

import (
	"context"
	"testing"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRaiseBuildsProblemDescription(t *testing.T) {
	backend := new(mockBackend)
	svc := NewCARService(backend)

	detail := &models.RejectionDetail{
		InspectionEntry: "LOT-0042",
		LotNo:           "25K26X01",
		InspectionType:  models.InspectionLot,
		ItemCode:        "GSKT-110",
		InspectedQty:    400,
		RejectedQty:     34,
		RejectionPct:    8.5,
		Defects: []models.DefectDetail{
			{DefectType: "Flash", RejectedQty: 20},
			{DefectType: "Air Mark", RejectedQty: 14},
		},
	}
	backend.On("RejectionDetail", mock.Anything, "LOT-0042").Return(detail, nil)
	backend.On("CreateCAR", mock.Anything, mock.MatchedBy(func(car *models.CorrectiveActionReport) bool {
		return car.InspectionEntry == "LOT-0042" && car.LotNo == "25K26X01"
	})).Return(&models.CorrectiveActionReport{Name: "CAR-TEST0001", Status: models.CARStatusOpen}, nil)

	created, err := svc.Raise(context.Background(), "LOT-0042")

	require.NoError(t, err)
	assert.Equal(t, "CAR-TEST0001", created.Name)

	call := backend.Calls[1].Arguments.Get(1).(*models.CorrectiveActionReport)
	assert.Contains(t, call.ProblemDescription, "25K26X01")
	assert.Contains(t, call.ProblemDescription, "8.50% rejection")
	assert.Contains(t, call.ProblemDescription, "Flash (20)")
	assert.Contains(t, call.ProblemDescription, "Air Mark (14)")
	backend.AssertExpectations(t)
}

func TestRaiseRequiresInspectionEntry(t *testing.T) {
	svc := NewCARService(new(mockBackend))

	_, err := svc.Raise(context.Background(), "")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestUpdateRejectsPastTargetDate(t *testing.T) {
	svc := NewCARService(new(mockBackend))

	past := time.Now().AddDate(0, 0, -2)
	_, err := svc.Update(context.Background(), "CAR-TEST0001", models.CARUpdate{TargetDate: &past})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}

func TestUpdateCloseRequiresRootCause(t *testing.T) {
	backend := new(mockBackend)
	svc := NewCARService(backend)

	backend.On("ListCARs", mock.Anything, models.CARStatus("")).Return([]models.CorrectiveActionReport{
		{Name: "CAR-TEST0001", Status: models.CARStatusOpen},
	}, nil)

	_, err := svc.Update(context.Background(), "CAR-TEST0001", models.CARUpdate{Status: models.CARStatusClosed})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}

func TestUpdateCloseWithRootCauseSucceeds(t *testing.T) {
	backend := new(mockBackend)
	svc := NewCARService(backend)

	backend.On("ListCARs", mock.Anything, models.CARStatus("")).Return([]models.CorrectiveActionReport{
		{Name: "CAR-TEST0001", RootCause: "Worn mould vent", CorrectiveAction: "Vent cleaned", Status: models.CARStatusInProgress},
	}, nil)
	backend.On("UpdateCAR", mock.Anything, "CAR-TEST0001", mock.Anything).
		Return(&models.CorrectiveActionReport{Name: "CAR-TEST0001", Status: models.CARStatusClosed}, nil)

	updated, err := svc.Update(context.Background(), "CAR-TEST0001", models.CARUpdate{Status: models.CARStatusClosed})

	require.NoError(t, err)
	assert.Equal(t, models.CARStatusClosed, updated.Status)
}

func TestSaveFiveWhyTrimsTrailingBlanks(t *testing.T) {
	backend := new(mockBackend)
	svc := NewCARService(backend)

	backend.On("SaveFiveWhy", mock.Anything, "CAR-TEST0001", []string{"Vent blocked", "Missed cleaning"}).Return(nil)

	err := svc.SaveFiveWhy(context.Background(), "CAR-TEST0001", []string{"Vent blocked", "Missed cleaning", "", "  ", ""})

	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestSaveFiveWhyRejectsTooMany(t *testing.T) {
	svc := NewCARService(new(mockBackend))

	err := svc.SaveFiveWhy(context.Background(), "CAR-TEST0001", []string{"1", "2", "3", "4", "5", "6"})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}

func TestPendingUsesConfiguredThreshold(t *testing.T) {
	backend := new(mockBackend)
	svc := NewCARService(backend)

	backend.On("ThresholdFor", mock.Anything, models.InspectionLot, "", "").
		Return(models.Threshold{ThresholdPct: 4.5}, nil)
	backend.On("PendingCARs", mock.Anything, "2025-11-26", 4.5).
		Return([]models.PendingCAR{{LotNo: "25K26X03", RejectionPct: 9.1}}, nil)

	pending, err := svc.Pending(context.Background(), "2025-11-26")

	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "25K26X03", pending[0].LotNo)
	backend.AssertExpectations(t)
}
