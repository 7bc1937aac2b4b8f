// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stockroom/pkg/pointer"
)

func TestTrim(t *testing.T) {
	assert.Nil(t, pointer.Trim(nil))
	assert.Nil(t, pointer.Trim(pointer.To("   ")))
	assert.Equal(t, "aisle 4", pointer.Val(pointer.Trim(pointer.To("  aisle 4\n"))))
}

func TestVal(t *testing.T) {
	var missing *int
	assert.Equal(t, 0, pointer.Val(missing))
	assert.Equal(t, 12, pointer.Val(pointer.To(12)))
}
