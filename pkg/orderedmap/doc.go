// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

Include locals are decoded into this map so that objects keep the key order
they were written with; iterating an object in an each directive, or printing
it through a placeholder, is therefore deterministic.
*/
package orderedmap
