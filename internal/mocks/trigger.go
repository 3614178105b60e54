package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Trigger struct {
	mock.Mock
}

func (m *Trigger) ItemChanged(userID uuid.UUID) {
	m.Called(userID)
}
