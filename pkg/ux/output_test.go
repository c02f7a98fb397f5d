// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withPersonality installs a personality writing to buffers and restores
// the previous one when the test ends.
func withPersonality(t *testing.T, level PersonalityLevel) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	orig := GetPersonality()
	t.Cleanup(func() { SetPersonality(orig) })

	var out, errOut bytes.Buffer
	SetPersonality(Personality{Level: level, Out: &out, Err: &errOut})
	return &out, &errOut
}

func TestSuccess_Machine(t *testing.T) {
	out, errOut := withPersonality(t, PersonalityMachine)

	Success("Analysis complete!")

	assert.Equal(t, "Analysis complete!\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestError_MachineIsVerbatim(t *testing.T) {
	out, errOut := withPersonality(t, PersonalityMachine)

	Error("Error: Log file 'x.log' not found")

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: Log file 'x.log' not found\n", errOut.String())
}

func TestWarning_GoesToErrorStream(t *testing.T) {
	for _, level := range []PersonalityLevel{PersonalityFull, PersonalityMinimal, PersonalityMachine} {
		t.Run(string(level), func(t *testing.T) {
			out, errOut := withPersonality(t, level)

			Warning("upload skipped")

			assert.Empty(t, out.String())
			assert.Contains(t, errOut.String(), "upload skipped")
		})
	}
}

func TestTitle_SilentForMachine(t *testing.T) {
	out, _ := withPersonality(t, PersonalityMachine)
	Title("archbench")
	assert.Empty(t, out.String())
}

func TestTitle_Minimal(t *testing.T) {
	out, _ := withPersonality(t, PersonalityMinimal)
	Title("archbench")
	assert.Equal(t, "archbench\n", out.String())
}

func TestKeyValue(t *testing.T) {
	out, _ := withPersonality(t, PersonalityMinimal)
	KeyValue("Report saved to", "results/benchmark-analysis.md")
	assert.Equal(t, "Report saved to: results/benchmark-analysis.md\n", out.String())
}

func TestKeyValue_FullContainsParts(t *testing.T) {
	out, _ := withPersonality(t, PersonalityFull)
	KeyValue("Mean ratio", "1.33")
	assert.Contains(t, out.String(), "Mean ratio")
	assert.Contains(t, out.String(), "1.33")
}

func TestIcon_Render(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconBullet} {
		assert.Contains(t, icon.Render(), string(icon))
	}
}

func TestInfo_Levels(t *testing.T) {
	out, _ := withPersonality(t, PersonalityMachine)
	Info("Report saved to: out/report.md")
	assert.Equal(t, "Report saved to: out/report.md\n", out.String())

	out, _ = withPersonality(t, PersonalityMinimal)
	Info("Report saved to: out/report.md")
	assert.Equal(t, "• Report saved to: out/report.md\n", out.String())
}
