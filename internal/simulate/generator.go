package simulate

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	eventIDDivisor     = 10000
	scenarioDivisor    = 8
)

// Constants for input generation ranges.
const (
	calmStressMin    = 0.0
	calmStressRange  = 20.0
	richFeedMin      = 80.0
	richFeedRange    = 20.0
	highStressMin    = 80.0
	highStressRange  = 20.0
	poorFeedMin      = 0.0
	poorFeedRange    = 30.0
	midInputMin      = 30.0
	midInputRange    = 40.0
	wideInputMin     = 0.0
	wideInputRange   = 100.0
	overshootMin     = 100.0
	overshootRange   = 50.0
	maxLineageSize   = 8
	minInbredCopies  = 2
	inbredCopyRange  = 5
	minLineAncestors = 3
	lineAncestorRVar = 4
	maxScoreValue    = 100.0
	maxPlacement     = 10
)

// Constants for birth scenario cases.
const (
	caseOptimalCare    = 0
	caseHighStress     = 1
	casePoorFeed       = 2
	caseInbredLine     = 3
	caseDisciplineLine = 4
	caseMixedLineage   = 5
	caseExtremeInputs  = 6
	caseSparseLineage  = 7
)

// disciplines sampled when building synthetic ancestors.
var disciplines = []string{
	"Racing",
	"Show Jumping",
	"Dressage",
	"Eventing",
	"Endurance",
	"Trail",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateBirths creates the specified number of birth events with unique foal IDs.
func generateBirths(ctx context.Context, config *Config, stats *Stats) ([]model.BirthEvent, error) {
	logger.Get().Info(ctx, "generating birth events with unique foal IDs", logger.Int("numBirths", config.NumBirths))

	events := make([]model.BirthEvent, config.NumBirths)

	// Pre-allocate foal IDs to ensure uniqueness
	foalIDs := make([]string, config.NumBirths)
	for i := 0; i < config.NumBirths; i++ {
		foalIDs[i] = uuid.New().String()
	}

	// Generate events concurrently
	type eventResult struct {
		index int
		event model.BirthEvent
		err   error
	}

	resultChan := make(chan eventResult, config.NumBirths)

	// Use worker pool for event generation
	workerCount := minInt(config.Workers, config.NumBirths)
	eventsPerWorker := config.NumBirths / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * eventsPerWorker
		end := start + eventsPerWorker
		if worker == workerCount-1 {
			end = config.NumBirths // Last worker gets remaining events
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- eventResult{index: i, err: ctx.Err()}
					return
				default:
					event := generateSingleBirth(i, foalIDs[i])
					resultChan <- eventResult{index: i, event: event, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumBirths; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during event generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate event %d: %w", result.index, result.err)
			}
			events[result.index] = result.event
		}
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated birth events successfully", logger.Int("count", len(events)))

	return events, nil
}

// generateSingleBirth creates a single birth event with the given index and foal ID.
func generateSingleBirth(index int, foalID string) model.BirthEvent {
	birth := generateVariedBirth()

	// Generate unique event ID
	randNum, _ := rand.Int(rand.Reader, big.NewInt(eventIDDivisor))
	eventID := "birth_" + strconv.FormatInt(int64(index), 10) + "_" + strconv.FormatInt(time.Now().Unix(), 10) + "_" + strconv.FormatInt(randNum.Int64(), 10)

	return model.BirthEvent{
		EventID: eventID,
		FoalID:  foalID,
		Context: birth,
	}
}

// generateVariedBirth creates a birth context with varied scenario distribution.
func generateVariedBirth() model.BirthContext {
	scenario, _ := rand.Int(rand.Reader, big.NewInt(scenarioDivisor))
	switch scenario.Int64() {
	case caseOptimalCare:
		// Calm, well-fed pregnancies
		return model.BirthContext{
			StressLevel: calmStressMin + getRandomFloat()*calmStressRange,
			FeedQuality: richFeedMin + getRandomFloat()*richFeedRange,
			Lineage:     randomLineage(getRandomInt(maxLineageSize)),
		}
	case caseHighStress:
		// Stressful pregnancies
		return model.BirthContext{
			StressLevel: highStressMin + getRandomFloat()*highStressRange,
			FeedQuality: midInputMin + getRandomFloat()*midInputRange,
			Lineage:     randomLineage(getRandomInt(maxLineageSize)),
		}
	case casePoorFeed:
		// Underfed pregnancies
		return model.BirthContext{
			StressLevel: midInputMin + getRandomFloat()*midInputRange,
			FeedQuality: poorFeedMin + getRandomFloat()*poorFeedRange,
			Lineage:     randomLineage(getRandomInt(maxLineageSize)),
		}
	case caseInbredLine:
		// Repeated ancestors
		copies := minInbredCopies + getRandomInt(inbredCopyRange)
		return model.BirthContext{
			StressLevel: midInputMin + getRandomFloat()*midInputRange,
			FeedQuality: midInputMin + getRandomFloat()*midInputRange,
			Lineage:     inbredLineage(copies),
		}
	case caseDisciplineLine:
		// Concentrated single-discipline ancestry
		count := minLineAncestors + getRandomInt(lineAncestorRVar)
		return model.BirthContext{
			StressLevel: midInputMin + getRandomFloat()*midInputRange,
			FeedQuality: midInputMin + getRandomFloat()*midInputRange,
			Lineage:     disciplineLineage(disciplines[getRandomInt(len(disciplines))], count),
		}
	case caseMixedLineage:
		// Varied ancestry across disciplines
		return model.BirthContext{
			StressLevel: wideInputMin + getRandomFloat()*wideInputRange,
			FeedQuality: wideInputMin + getRandomFloat()*wideInputRange,
			Lineage:     randomLineage(maxLineageSize),
		}
	case caseExtremeInputs:
		// Out-of-range inputs exercise clamping
		return model.BirthContext{
			StressLevel: overshootMin + getRandomFloat()*overshootRange,
			FeedQuality: -(getRandomFloat() * overshootRange),
			Lineage:     randomLineage(getRandomInt(maxLineageSize)),
		}
	case caseSparseLineage:
		// Little to no recorded ancestry
		return model.BirthContext{
			StressLevel: wideInputMin + getRandomFloat()*wideInputRange,
			FeedQuality: wideInputMin + getRandomFloat()*wideInputRange,
			Lineage:     randomLineage(getRandomInt(2)),
		}
	default:
		return model.BirthContext{
			StressLevel: wideInputMin + getRandomFloat()*wideInputRange,
			FeedQuality: wideInputMin + getRandomFloat()*wideInputRange,
			Lineage:     randomLineage(getRandomInt(maxLineageSize)),
		}
	}
}

// randomLineage builds n ancestors with mixed disciplines and histories.
func randomLineage(n int) model.Lineage {
	lineage := make(model.Lineage, 0, n)
	for i := 0; i < n; i++ {
		lineage = append(lineage, randomAncestor())
	}
	return lineage
}

// inbredLineage builds a lineage where one ancestor appears copies times.
func inbredLineage(copies int) model.Lineage {
	shared := randomAncestor()
	lineage := make(model.Lineage, 0, copies+2)
	for i := 0; i < copies; i++ {
		lineage = append(lineage, shared)
	}
	lineage = append(lineage, randomAncestor(), randomAncestor())
	return lineage
}

// disciplineLineage builds count ancestors that all resolve to discipline.
func disciplineLineage(discipline string, count int) model.Lineage {
	lineage := make(model.Lineage, 0, count)
	for i := 0; i < count; i++ {
		a := randomAncestor()
		a.Discipline = discipline
		lineage = append(lineage, a)
	}
	return lineage
}

// randomAncestor builds one ancestor; discipline may come from the tag,
// scores, or competition history so every resolution path gets exercised.
func randomAncestor() model.Ancestor {
	id := uuid.New().String()
	a := model.Ancestor{
		ID:   id,
		Name: "ancestor-" + id[:8],
	}

	switch getRandomInt(3) {
	case 0:
		a.Discipline = disciplines[getRandomInt(len(disciplines))]
	case 1:
		for i := 0; i < 2; i++ {
			a.DisciplineScores = append(a.DisciplineScores, model.DisciplineScore{
				Discipline: disciplines[getRandomInt(len(disciplines))],
				Score:      getRandomFloat() * maxScoreValue,
			})
		}
	default:
		for i := 0; i < 3; i++ {
			a.CompetitionHistory = append(a.CompetitionHistory, model.CompetitionRecord{
				Discipline: disciplines[getRandomInt(len(disciplines))],
				Placement:  1 + getRandomInt(maxPlacement),
			})
		}
	}
	return a
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
