package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"rejectconsole/models"
)

// monthCodes maps month number to the lot-number month letter. I and O are
// skipped to avoid confusion with 1 and 0 on shop-floor labels.
var monthCodes = [...]string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M"}

var defectTypes = []string{
	"Flash", "Short Fill", "Air Trap", "Flow Mark", "Contamination",
	"Cut Mark", "Deflashing Damage", "Dimensional", "Blister", "Burn Mark",
}

var itemCodes = []string{"T5117", "T5204", "T6630", "T7012", "T7450"}

var mouldRefs = []string{"MLD-5117-A", "MLD-5204-B", "MLD-6630-A", "MLD-7012-C", "MLD-7450-A"}

var operators = []string{"Arun Kumar", "Priya Shankar", "Vijay Raman", "Deepa Nair", "Suresh Babu"}

var inspectors = []string{"Lakshmi M", "Ravi S", "Kavitha P"}

var deflashers = []string{"Sri Deflashing Works", "Annai Industries", "PKM Process"}

// Generator produces synthetic production and inspection data for one
// production date. Deterministic for a given seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Dataset is one generated production day.
type Dataset struct {
	Productions []models.ProductionEntry
	Inspections []models.InspectionEntry
	Defects     map[string][]models.DefectDetail // keyed by inspection entry name
}

// LotNumber builds a lot number in the plant's YY-monthcode-DD-press-seq
// shape, e.g. 25K26X01.
func LotNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%02d%s%02dX%02d", date.Year()%100, monthCodes[date.Month()-1], date.Day(), seq)
}

// GenerateDay produces lots lots for one production date, each taken
// through patrol, line, lot, incoming, and final visual inspection. A
// fraction of lots rejects above the default threshold so dashboards and
// CAR flows have something to show.
func (g *Generator) GenerateDay(date time.Time, lots int) *Dataset {
	ds := &Dataset{Defects: make(map[string][]models.DefectDetail)}

	for i := 1; i <= lots; i++ {
		lotNo := LotNumber(date, i)
		itemIdx := g.rng.Intn(len(itemCodes))

		ds.Productions = append(ds.Productions, models.ProductionEntry{
			Name:           fmt.Sprintf("MPE-%s", lotNo),
			ScanLotNumber:  lotNo,
			ItemCode:       itemCodes[itemIdx],
			MouldReference: mouldRefs[itemIdx],
			EmployeeName:   operators[g.rng.Intn(len(operators))],
			MouldingDate:   date,
			BatchNo:        fmt.Sprintf("B%04d", g.rng.Intn(10000)),
			ShiftType:      pick(g.rng, "Day", "Night"),
		})

		// Roughly one lot in five runs hot and exceeds the 5% threshold.
		hot := g.rng.Float64() < 0.2

		for _, stage := range []models.InspectionType{
			models.InspectionPatrol,
			models.InspectionLine,
			models.InspectionLot,
			models.InspectionIncoming,
		} {
			ds.add(g.makeInspection(stage, lotNo, date, itemIdx, hot, i), g)
		}

		// Final visual runs on sub-lots carrying a suffix.
		for sub := 1; sub <= 1+g.rng.Intn(2); sub++ {
			subLot := fmt.Sprintf("%s-%d", lotNo, sub)
			entry := g.makeInspection(models.InspectionFinalVisual, subLot, date, itemIdx, hot, i)
			ds.add(entry, g)
		}
	}

	return ds
}

func (g *Generator) makeInspection(stage models.InspectionType, lotNo string, date time.Time, itemIdx int, hot bool, press int) models.InspectionEntry {
	inspected := float64(200 + g.rng.Intn(1800))

	base := 0.5 + g.rng.Float64()*3.0 // 0.5% .. 3.5%
	if hot {
		base = 5.5 + g.rng.Float64()*6.0 // 5.5% .. 11.5%
	}
	rejected := math.Round(inspected * base / 100)
	pct := round2(rejected / inspected * 100)

	entry := models.InspectionEntry{
		Name:          fmt.Sprintf("IE-%s-%s", stageCode(stage), lotNo),
		Type:          stage,
		LotNo:         lotNo,
		PostingDate:   date,
		ItemCode:      itemCodes[itemIdx],
		MachineNo:     fmt.Sprintf("P%02d", press),
		OperatorName:  operators[g.rng.Intn(len(operators))],
		InspectorName: inspectors[g.rng.Intn(len(inspectors))],
		InspectedQty:  inspected,
		RejectedQty:   rejected,
		RejectionPct:  pct,
	}

	if stage == models.InspectionIncoming {
		entry.DeflasherName = deflashers[g.rng.Intn(len(deflashers))]
		entry.QtySent = inspected + math.Round(g.rng.Float64()*10)
		entry.QtyReceived = inspected
	}
	return entry
}

func (ds *Dataset) add(entry models.InspectionEntry, g *Generator) {
	ds.Inspections = append(ds.Inspections, entry)

	// Spread the rejected quantity across two or three defect types.
	remaining := entry.RejectedQty
	kinds := 2 + g.rng.Intn(2)
	for k := 0; k < kinds && remaining > 0; k++ {
		qty := remaining
		if k < kinds-1 {
			qty = math.Round(remaining * (0.3 + g.rng.Float64()*0.4))
		}
		if qty == 0 {
			continue
		}
		remaining -= qty
		ds.Defects[entry.Name] = append(ds.Defects[entry.Name], models.DefectDetail{
			DefectType:  defectTypes[g.rng.Intn(len(defectTypes))],
			RejectedQty: qty,
		})
	}
}

func stageCode(t models.InspectionType) string {
	switch t {
	case models.InspectionPatrol:
		return "PAT"
	case models.InspectionLine:
		return "LIN"
	case models.InspectionLot:
		return "LOT"
	case models.InspectionIncoming:
		return "INC"
	case models.InspectionFinalVisual:
		return "FVI"
	}
	return "UNK"
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
