// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema(t *testing.T) {
	expected := ManifestMeta{APIVersion: APIGroup + "/v1", Kind: "LaunchDescription"}

	assert.NoError(t, expected.ValidateSchema(expected))
	assert.ErrorContains(t, expected.ValidateSchema(ManifestMeta{APIVersion: expected.APIVersion}), "'kind'")
	assert.ErrorContains(t, expected.ValidateSchema(ManifestMeta{Kind: expected.Kind}), "'apiVersion'")
	assert.ErrorContains(t, expected.ValidateSchema(ManifestMeta{Kind: "Other", APIVersion: expected.APIVersion}), "unsupported kind")
	assert.ErrorContains(t, expected.ValidateSchema(ManifestMeta{Kind: expected.Kind, APIVersion: APIGroup + "/v2"}), "unsupported apiVersion")
}
