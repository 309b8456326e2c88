// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package utils

// FireAndForgetSynchronizer decouples side work (like artifact cleanup) from
// the request path. The production implementation just spawns a goroutine;
// the synchronous one runs inline so tests can assert on the effects without
// sleeping.
type FireAndForgetSynchronizer interface {
	FireAndForget(fn func())
}

type fireAndForgetSynchronizer struct{}

func (fireAndForgetSynchronizer) FireAndForget(fn func()) {
	go fn()
}

func NewFireAndForgetSynchronizer() FireAndForgetSynchronizer {
	return fireAndForgetSynchronizer{}
}

type syncFireAndForgetSynchronizer struct{}

func (syncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	fn()
}

func NewSyncFireAndForgetSynchronizer() FireAndForgetSynchronizer {
	return syncFireAndForgetSynchronizer{}
}
