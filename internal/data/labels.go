// Package data carries the static display-label tables shipped with the
// binary.
package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

// Sentinels returned for codes missing from the tables.
const (
	unknownLabel   = "Неизвестно"
	unknownPayment = "Неизвестная валюта"
)

// Labels holds the code-to-name tables used when rendering merchant and
// bead records.
type Labels struct {
	Payments map[int]string `yaml:"payments"`
	Bead     struct {
		ChkGroups       map[int]string `yaml:"chk_groups"`
		ApplyTargets    map[int]string `yaml:"apply_targets"`
		TargetPositions map[int]string `yaml:"target_positions"`
	} `yaml:"bead"`
}

// LoadLabels parses the embedded label tables.
func LoadLabels() (*Labels, error) {
	var l Labels
	if err := yaml.Unmarshal(labelsYAML, &l); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	return &l, nil
}

// PaymentType returns the currency label of a payment code.
func (l *Labels) PaymentType(code int) string {
	if name, ok := l.Payments[code]; ok {
		return name
	}
	return unknownPayment
}

// ChkGroup returns the label of a bead check-group code.
func (l *Labels) ChkGroup(code int) string {
	if name, ok := l.Bead.ChkGroups[code]; ok {
		return name
	}
	return unknownLabel
}

// ApplyTarget returns the label of a bead apply-target code.
func (l *Labels) ApplyTarget(code int) string {
	if name, ok := l.Bead.ApplyTargets[code]; ok {
		return name
	}
	return unknownLabel
}

// TargetIPos returns the label of a bead equip-position code.
func (l *Labels) TargetIPos(code int) string {
	if name, ok := l.Bead.TargetPositions[code]; ok {
		return name
	}
	return unknownLabel
}
