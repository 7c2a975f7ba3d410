package mock

import (
	context "context"
	reflect "reflect"

	cards "github.com/pvpfilter/cardcatalog/internal/domain/cards"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockRepository) Load(ctx context.Context) ([]cards.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx)
	ret0, _ := ret[0].([]cards.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockRepositoryMockRecorder) Load(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockRepository)(nil).Load), ctx)
}

// SaveAll mocks base method.
func (m *MockRepository) SaveAll(ctx context.Context, entries []cards.Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveAll", ctx, entries)
	ret0, _ := ret[0].(error)
	return ret0
}

// SaveAll indicates an expected call of SaveAll.
func (mr *MockRepositoryMockRecorder) SaveAll(ctx, entries any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveAll", reflect.TypeOf((*MockRepository)(nil).SaveAll), ctx, entries)
}

// Cards is a small fixture shared by tests.
var Cards = []cards.Card{
	{Name: "Akari", Element: "Fire", HairColor: "Brown", Type: cards.TypeHuman, HP: "80", ATK: "75", DEF: "70", SPD: "90", Talents: "Super Heal", TalentType: cards.TalentActive},
	{Name: "Boreas", Element: "Dark", HairColor: "Off-White", Type: cards.TypeNonHuman, HP: "120", ATK: "95", DEF: "60", SPD: "61", Talents: "Shadow Step", TalentType: cards.TalentPassive},
	{Name: "Celes", Element: "Neutral", HairColor: "White", Type: cards.TypeHuman, HP: "65", ATK: "66", DEF: "67", SPD: "68", Talents: "Guard", TalentType: cards.TalentPassive},
}
