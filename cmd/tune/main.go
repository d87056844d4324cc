// Command tune searches swim and coupling parameters so a lone jelly
// cruises at a target speed without overstretching its body.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/aquarium/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	MeanSpeed  float64 `csv:"mean_speed"`
	SpeedStd   float64 `csv:"speed_std"`
	MaxStretch float64 `csv:"max_stretch"`
	Params     string  `csv:"params"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target-speed", 0.35, "Desired mean cruise speed in scene units per second")
	duration := flag.Float64("duration", 20, "Simulated seconds per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, baseCfg, evalSeeds, *duration, *target)

	var rows []*evalRow
	bestFitness := 1e18
	var bestParams []float64
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			r := evaluator.LastResult()

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}
			rows = append(rows, &evalRow{
				Eval:       len(rows) + 1,
				Fitness:    fitness,
				MeanSpeed:  r.MeanSpeed,
				SpeedStd:   r.SpeedStd,
				MaxStretch: r.MaxStretch,
				Params:     fmt.Sprint(raw),
			})
			fmt.Printf("Eval %d/%d: speed=%.3f±%.3f stretch=%.4f fitness=%.5f (best=%.5f) | %s\n",
				len(rows), *maxEvals, r.MeanSpeed, r.SpeedStd, r.MaxStretch, fitness, bestFitness,
				time.Since(start).Round(time.Second))
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.NelderMead{}

	fmt.Printf("Tuning %d parameters toward %.3f u/s, max_evals=%d, seeds=%d\n",
		params.Dim(), *target, *maxEvals, *seeds)

	initX := params.Normalize(params.Extract(baseCfg))
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	f, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Printf("failed to write log: %v", err)
	}

	if bestParams == nil {
		return
	}
	fmt.Println("\nBest parameters:")
	for i, s := range params.Specs {
		fmt.Printf("  %s: %.6f\n", s.Path, bestParams[i])
	}

	params.Apply(baseCfg, bestParams)
	cfgPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(cfgPath); err != nil {
		log.Printf("failed to write best config: %v", err)
		return
	}
	fmt.Printf("\nBest config saved to: %s\n", cfgPath)
}
