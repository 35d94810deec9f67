package services

import (
	"testing"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditionService_CreateAssignsNextNumber(t *testing.T) {
	f := newFixture(t)

	first := f.createEdition(t)
	second := f.createEdition(t)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, models.StatusRegistrationOpen, first.Status)
	assert.Equal(t, "2025-01-15", first.StartDate.Format("2006-01-02"))

	next, err := f.editions.NextNumber(f.ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	next, err = f.editions.NextNumber(f.ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestEditionService_CreateRejectsTakenNumber(t *testing.T) {
	f := newFixture(t)
	f.createEdition(t)

	number := 1
	_, err := f.editions.Create(f.ctx, CreateEditionInput{
		Name:      "Copa Sinuca Q1 bis",
		Number:    &number,
		Year:      2025,
		StartDate: "2025-02-01",
	})
	assert.ErrorIs(t, err, ErrEditionNumberTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEditionService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]CreateEditionInput{
		"short name":   {Name: "Cup", Year: 2025, StartDate: "2025-01-01"},
		"year too old": {Name: "Copa Antiga", Year: 2019, StartDate: "2019-01-01"},
		"bad date":     {Name: "Copa Sinuca", Year: 2025, StartDate: "15/01/2025"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.editions.Create(f.ctx, input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestEditionService_ListOrdersByYearThenNumber(t *testing.T) {
	f := newFixture(t)
	for _, year := range []int{2024, 2025, 2025} {
		_, err := f.editions.Create(f.ctx, CreateEditionInput{Name: "Copa Sinuca", Year: year, StartDate: "2025-01-01"})
		require.NoError(t, err)
	}

	editions, err := f.editions.List(f.ctx, ListEditionsInput{})
	require.NoError(t, err)
	require.Len(t, editions, 3)
	assert.Equal(t, [2]int{2025, 2}, [2]int{editions[0].Year, editions[0].Number})
	assert.Equal(t, [2]int{2025, 1}, [2]int{editions[1].Year, editions[1].Number})
	assert.Equal(t, [2]int{2024, 1}, [2]int{editions[2].Year, editions[2].Number})

	year := 2024
	filtered, err := f.editions.List(f.ctx, ListEditionsInput{Year: &year})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestEditionService_StateMachine(t *testing.T) {
	f := newFixture(t)
	edition := f.createEdition(t)
	players := f.registerPlayers(t, 10, 8, 6)
	f.enroll(t, edition.ID, players)

	t.Run("cannot skip bracketing", func(t *testing.T) {
		_, err := f.editions.Start(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.ErrorIs(t, err, ErrState)
	})

	t.Run("needs four enrollments", func(t *testing.T) {
		_, err := f.editions.OpenBracketing(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrNotEnoughEnrollments)
	})

	extra := f.registerPlayers(t, 4)
	f.enroll(t, edition.ID, extra)

	opened, err := f.editions.ChangeStatus(f.ctx, edition.ID, models.StatusBracketing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBracketing, opened.Status)

	t.Run("start needs a bracket", func(t *testing.T) {
		_, err := f.editions.Start(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrNoMatches)
	})

	t.Run("finishing goes through settlement", func(t *testing.T) {
		_, err := f.editions.ChangeStatus(f.ctx, edition.ID, models.StatusFinished)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("no going back", func(t *testing.T) {
		_, err := f.editions.ChangeStatus(f.ctx, edition.ID, models.StatusRegistrationOpen)
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.editions.OpenBracketing(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	_, err = f.pairing.AutoPair(f.ctx, edition.ID, false)
	require.NoError(t, err)
	_, err = f.bracket.Generate(f.ctx, edition.ID, false)
	require.NoError(t, err)

	started, err := f.editions.Start(f.ctx, edition.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)

	assert.Contains(t, f.notifier.types(), brackets.EventEditionStatusChanged)
}

func TestEditionService_Enrollment(t *testing.T) {
	f := newFixture(t)
	edition := f.createEdition(t)
	players := f.registerPlayers(t, 10, 8, 6, 4, 2)

	_, err := f.editions.Enroll(f.ctx, edition.ID, players[0].ID)
	require.NoError(t, err)

	t.Run("duplicate", func(t *testing.T) {
		_, err := f.editions.Enroll(f.ctx, edition.ID, players[0].ID)
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("inactive player", func(t *testing.T) {
		_, err := f.players.Deactivate(f.ctx, players[4].ID)
		require.NoError(t, err)
		_, err = f.editions.Enroll(f.ctx, edition.ID, players[4].ID)
		assert.ErrorIs(t, err, ErrPlayerInactive)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := f.editions.Enroll(f.ctx, edition.ID, uuid.New())
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("available players", func(t *testing.T) {
		available, err := f.editions.AvailablePlayers(f.ctx, edition.ID)
		require.NoError(t, err)
		require.Len(t, available, 3)
		assert.Equal(t, players[1].ID, available[0].ID)
		assert.Equal(t, players[3].ID, available[2].ID)
	})

	t.Run("unenroll", func(t *testing.T) {
		require.NoError(t, f.editions.Unenroll(f.ctx, edition.ID, players[0].ID))
		err := f.editions.Unenroll(f.ctx, edition.ID, players[0].ID)
		assert.ErrorIs(t, err, ErrEnrollmentNotFound)
	})
}

func TestEditionService_UnenrollRefusedWhilePaired(t *testing.T) {
	f := newFixture(t)
	edition, players := f.bracketingEdition(t, 10, 8, 6, 4)
	_, err := f.pairing.AutoPair(f.ctx, edition.ID, false)
	require.NoError(t, err)

	err = f.editions.Unenroll(f.ctx, edition.ID, players[0].ID)
	assert.ErrorIs(t, err, ErrPlayerHasPair)
}

func TestEditionService_EnrollmentClosedOnceStarted(t *testing.T) {
	f := newFixture(t)
	edition, _ := f.startedEdition(t, 10, 8)
	late := f.registerPlayers(t, 1)

	_, err := f.editions.Enroll(f.ctx, edition.ID, late[0].ID)
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestEditionService_Overview(t *testing.T) {
	f := newFixture(t)
	edition, _ := f.startedEdition(t, 12, 9, 7, 5, 3)

	overview, err := f.editions.Overview(f.ctx, edition.ID)
	require.NoError(t, err)

	assert.Equal(t, edition.ID, overview.Edition.ID)
	assert.Len(t, overview.Players, 10)
	assert.Len(t, overview.Pairs, 5)
	assert.Len(t, overview.Matches, 1)
	assert.Len(t, overview.PendingByes, 3)

	_, err = f.editions.Overview(f.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrEditionNotFound)
}
