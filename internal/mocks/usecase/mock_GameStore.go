package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"goban/internal/domain/game"
)

// MockGameStore is a testify mock of the game use case's store.
type MockGameStore struct {
	mock.Mock
}

type MockGameStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockGameStore) EXPECT() *MockGameStore_Expecter {
	return &MockGameStore_Expecter{mock: &_m.Mock}
}

// NewMockGameStore registers a cleanup that asserts every expectation was met.
func NewMockGameStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGameStore {
	m := &MockGameStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockGameStore) SaveState(ctx context.Context, gameID string, state game.State) error {
	ret := _m.Called(ctx, gameID, state)
	return ret.Error(0)
}

type MockGameStore_SaveState_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) SaveState(ctx interface{}, gameID interface{}, state interface{}) *MockGameStore_SaveState_Call {
	return &MockGameStore_SaveState_Call{Call: _e.mock.On("SaveState", ctx, gameID, state)}
}

func (_c *MockGameStore_SaveState_Call) Return(err error) *MockGameStore_SaveState_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockGameStore) LoadState(ctx context.Context, gameID string) (game.State, error) {
	ret := _m.Called(ctx, gameID)
	state, _ := ret.Get(0).(game.State)
	return state, ret.Error(1)
}

type MockGameStore_LoadState_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) LoadState(ctx interface{}, gameID interface{}) *MockGameStore_LoadState_Call {
	return &MockGameStore_LoadState_Call{Call: _e.mock.On("LoadState", ctx, gameID)}
}

func (_c *MockGameStore_LoadState_Call) Return(state game.State, err error) *MockGameStore_LoadState_Call {
	_c.Call.Return(state, err)
	return _c
}

func (_m *MockGameStore) AppendMove(ctx context.Context, gameID string, move game.Move) error {
	ret := _m.Called(ctx, gameID, move)
	return ret.Error(0)
}

type MockGameStore_AppendMove_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) AppendMove(ctx interface{}, gameID interface{}, move interface{}) *MockGameStore_AppendMove_Call {
	return &MockGameStore_AppendMove_Call{Call: _e.mock.On("AppendMove", ctx, gameID, move)}
}

func (_c *MockGameStore_AppendMove_Call) Return(err error) *MockGameStore_AppendMove_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockGameStore) LoadMoves(ctx context.Context, gameID string) ([]game.Move, error) {
	ret := _m.Called(ctx, gameID)
	moves, _ := ret.Get(0).([]game.Move)
	return moves, ret.Error(1)
}

type MockGameStore_LoadMoves_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) LoadMoves(ctx interface{}, gameID interface{}) *MockGameStore_LoadMoves_Call {
	return &MockGameStore_LoadMoves_Call{Call: _e.mock.On("LoadMoves", ctx, gameID)}
}

func (_c *MockGameStore_LoadMoves_Call) Return(moves []game.Move, err error) *MockGameStore_LoadMoves_Call {
	_c.Call.Return(moves, err)
	return _c
}

func (_m *MockGameStore) DeleteGame(ctx context.Context, gameID string) error {
	ret := _m.Called(ctx, gameID)
	return ret.Error(0)
}

type MockGameStore_DeleteGame_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) DeleteGame(ctx interface{}, gameID interface{}) *MockGameStore_DeleteGame_Call {
	return &MockGameStore_DeleteGame_Call{Call: _e.mock.On("DeleteGame", ctx, gameID)}
}

func (_c *MockGameStore_DeleteGame_Call) Return(err error) *MockGameStore_DeleteGame_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockGameStore) SaveResult(ctx context.Context, record game.Record) error {
	ret := _m.Called(ctx, record)
	return ret.Error(0)
}

type MockGameStore_SaveResult_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) SaveResult(ctx interface{}, record interface{}) *MockGameStore_SaveResult_Call {
	return &MockGameStore_SaveResult_Call{Call: _e.mock.On("SaveResult", ctx, record)}
}

func (_c *MockGameStore_SaveResult_Call) Return(err error) *MockGameStore_SaveResult_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockGameStore) GetResult(ctx context.Context, gameID string) (game.Record, error) {
	ret := _m.Called(ctx, gameID)
	record, _ := ret.Get(0).(game.Record)
	return record, ret.Error(1)
}

type MockGameStore_GetResult_Call struct {
	*mock.Call
}

func (_e *MockGameStore_Expecter) GetResult(ctx interface{}, gameID interface{}) *MockGameStore_GetResult_Call {
	return &MockGameStore_GetResult_Call{Call: _e.mock.On("GetResult", ctx, gameID)}
}

func (_c *MockGameStore_GetResult_Call) Return(record game.Record, err error) *MockGameStore_GetResult_Call {
	_c.Call.Return(record, err)
	return _c
}
