/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package measuredhistory

import "github.com/atalk/xmppcore/history"

//go:generate moq -out repository.mock_test.go . historyRepository:repositoryMock
type historyRepository interface {
	history.Repository
}
