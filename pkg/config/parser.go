package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

type SizeRange struct {
	Start int `json:"Start"`
	Stop  int `json:"Stop"`
	Step  int `json:"Step"`
}

type ComplexityConfiguration struct {
	Seed int64 `json:"Seed"`

	Workload   string    `json:"Workload"`
	InputSizes []int     `json:"InputSizes"`
	SizeRange  SizeRange `json:"SizeRange"`

	Repetitions int  `json:"Repetitions"`
	Number      int  `json:"Number"`
	Shuffle     bool `json:"Shuffle"`

	SamplePauseMicroseconds     int  `json:"SamplePauseMicroseconds"`
	RepetitionPauseMilliseconds int  `json:"RepetitionPauseMilliseconds"`
	DisablePauses               bool `json:"DisablePauses"`

	Objective string `json:"Objective"`
	PinCPU    int    `json:"PinCPU"`

	OutputPathPrefix    string `json:"OutputPathPrefix"`
	EnablePlot          bool   `json:"EnablePlot"`
	EnableExport        bool   `json:"EnableExport"`
	EnableZipkinTracing bool   `json:"EnableZipkinTracing"`
}

// ReadConfigurationFile parses the JSON file at path. Fields missing from
// the file keep their defaults.
func ReadConfigurationFile(path string) ComplexityConfiguration {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	config := DefaultConfiguration()
	err = json.Unmarshal(byteValue, &config)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
