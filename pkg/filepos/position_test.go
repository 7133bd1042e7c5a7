// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos_test

import (
	"testing"

	"carvel.dev/htmlinc/pkg/filepos"
	"github.com/stretchr/testify/assert"
)

func TestPositionAsCompactString(t *testing.T) {
	assert.Equal(t, "index.html:3", filepos.NewPositionInFile(3, "index.html").AsCompactString())
	assert.Equal(t, "index.html:3:7", filepos.NewPositionAt(3, 7, "index.html").AsCompactString())
	assert.Equal(t, "12", filepos.NewPosition(12).AsCompactString())
	assert.Equal(t, "card.html:?", filepos.NewUnknownPositionInFile("card.html").AsCompactString())
	assert.Equal(t, "?", filepos.NewUnknownPosition().AsCompactString())
	assert.Equal(t, "line card.html:1", filepos.NewPositionInFile(1, "card.html").AsString())
}

func TestPositionDeepCopy(t *testing.T) {
	orig := filepos.NewPositionAt(2, 4, "a.html")
	cp := orig.DeepCopy()
	cp.SetFile("b.html")

	assert.Equal(t, "a.html:2:4", orig.AsCompactString())
	assert.Equal(t, "b.html:2:4", cp.AsCompactString())

	var nilPos *filepos.Position
	assert.Nil(t, nilPos.DeepCopy())
	assert.False(t, nilPos.IsKnown())
}
