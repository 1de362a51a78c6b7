// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"crypto/md5"
	"encoding/hex"
)

// fingerprint returns the hex MD5 digest of the SVG font. It is used for
// cache busting only.
func fingerprint(svg []byte) string {
	sum := md5.Sum(svg)
	return hex.EncodeToString(sum[:])
}
