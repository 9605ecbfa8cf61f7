package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

type ExportData struct {
	Scene      string             `json:"scene"`
	Integrator string             `json:"integrator"`
	Params     dynamo.Params      `json:"params"`
	Steps      int                `json:"steps"`
	Track      []int              `json:"track"`
	Times      []float64          `json:"times"`
	Positions  [][]mgl64.Vec3     `json:"positions"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(scene, integrator string, params dynamo.Params, result *dynamo.Result) ExportData {
	return ExportData{
		Scene:      scene,
		Integrator: integrator,
		Params:     params,
		Steps:      result.StepsTaken,
		Track:      result.Track,
		Times:      result.Times,
		Positions:  result.Positions,
		Metrics:    result.Metrics,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, data); err != nil {
		return err
	}
	return file.Close()
}
