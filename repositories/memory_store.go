package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. It backs the test suites and the
// `serve --memory` mode. Operations are serialized by a single lock that a
// transaction holds for its whole duration.
type MemoryStore struct {
	state *memoryState
	inTx  bool
}

type memoryState struct {
	mu   sync.Mutex
	data *memoryData
}

type memoryData struct {
	players     []models.Player
	editions    []models.Edition
	enrollments []models.Enrollment
	pairs       []models.Pair
	matches     []models.Match
	byes        []models.PendingBye
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{data: &memoryData{}}}
}

func (s *MemoryStore) Players() PlayerRepository         { return &memoryPlayerRepository{s} }
func (s *MemoryStore) Editions() EditionRepository       { return &memoryEditionRepository{s} }
func (s *MemoryStore) Enrollments() EnrollmentRepository { return &memoryEnrollmentRepository{s} }
func (s *MemoryStore) Pairs() PairRepository             { return &memoryPairRepository{s} }
func (s *MemoryStore) Matches() MatchRepository          { return &memoryMatchRepository{s} }
func (s *MemoryStore) Byes() ByeRepository               { return &memoryByeRepository{s} }

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	snapshot := s.state.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state.data = snapshot
			panic(p)
		}
		if err != nil {
			s.state.data = snapshot
		}
	}()

	return fn(&MemoryStore{state: s.state, inTx: true})
}

// lock returns the matching unlock. Inside a transaction the lock is already held.
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.state.mu.Lock()
	return s.state.mu.Unlock
}

func (s *MemoryStore) data() *memoryData {
	return s.state.data
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		players:     append([]models.Player(nil), d.players...),
		editions:    append([]models.Edition(nil), d.editions...),
		enrollments: append([]models.Enrollment(nil), d.enrollments...),
		pairs:       append([]models.Pair(nil), d.pairs...),
		byes:        append([]models.PendingBye(nil), d.byes...),
		matches:     make([]models.Match, len(d.matches)),
	}
	for i, m := range d.matches {
		c.matches[i] = cloneMatch(m)
	}
	return c
}

func cloneMatch(m models.Match) models.Match {
	m.Pair1ID = cloneID(m.Pair1ID)
	m.Pair2ID = cloneID(m.Pair2ID)
	m.WinnerID = cloneID(m.WinnerID)
	return m
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(id *uuid.UUID, other uuid.UUID) bool {
	return id != nil && *id == other
}

// --- players ---

type memoryPlayerRepository struct{ s *MemoryStore }

func (r *memoryPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	defer r.s.lock()()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.data().players = append(r.s.data().players, *p)
	return nil
}

func (r *memoryPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	defer r.s.lock()()
	for _, p := range r.s.data().players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (r *memoryPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error) {
	defer r.s.lock()()

	var wanted map[uuid.UUID]bool
	if filter.IDs != nil {
		wanted = make(map[uuid.UUID]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = true
		}
	}

	players := make([]models.Player, 0)
	for _, p := range r.s.data().players {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		if wanted != nil && !wanted[p.ID] {
			continue
		}
		players = append(players, p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].PointsTotal != players[j].PointsTotal {
			return players[i].PointsTotal > players[j].PointsTotal
		}
		if players[i].Wins != players[j].Wins {
			return players[i].Wins > players[j].Wins
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (r *memoryPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	defer r.s.lock()()
	for i, existing := range r.s.data().players {
		if existing.ID != p.ID {
			continue
		}
		existing.Name = p.Name
		existing.Sector = p.Sector
		existing.PhotoURL = p.PhotoURL
		existing.PhotoKey = p.PhotoKey
		existing.Active = p.Active
		existing.UpdatedAt = time.Now().UTC()
		r.s.data().players[i] = existing
		p.UpdatedAt = existing.UpdatedAt
		return nil
	}
	return ErrPlayerNotFound
}

func (r *memoryPlayerRepository) AddStats(ctx context.Context, id uuid.UUID, delta models.StatsDelta) error {
	defer r.s.lock()()
	for i, p := range r.s.data().players {
		if p.ID != id {
			continue
		}
		p.PointsTotal += delta.Points
		p.Wins += delta.Wins
		p.Appearances += delta.Appearances
		p.UpdatedAt = time.Now().UTC()
		r.s.data().players[i] = p
		return nil
	}
	return ErrPlayerNotFound
}

// --- editions ---

type memoryEditionRepository struct{ s *MemoryStore }

func (r *memoryEditionRepository) Create(ctx context.Context, e *models.Edition) error {
	defer r.s.lock()()
	for _, existing := range r.s.data().editions {
		if existing.Year == e.Year && existing.Number == e.Number {
			return ErrEditionNumberConflict
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data().editions = append(r.s.data().editions, *e)
	return nil
}

func (r *memoryEditionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Edition, error) {
	defer r.s.lock()()
	for _, e := range r.s.data().editions {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrEditionNotFound
}

func (r *memoryEditionRepository) List(ctx context.Context, filter ListEditionsFilter) ([]models.Edition, error) {
	defer r.s.lock()()
	editions := make([]models.Edition, 0)
	for _, e := range r.s.data().editions {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Year != nil && e.Year != *filter.Year {
			continue
		}
		editions = append(editions, e)
	}
	sort.SliceStable(editions, func(i, j int) bool {
		if editions[i].Year != editions[j].Year {
			return editions[i].Year > editions[j].Year
		}
		return editions[i].Number > editions[j].Number
	})
	return editions, nil
}

func (r *memoryEditionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.EditionStatus) error {
	defer r.s.lock()()
	for i, e := range r.s.data().editions {
		if e.ID != id || e.Status != from {
			continue
		}
		e.Status = to
		e.UpdatedAt = time.Now().UTC()
		r.s.data().editions[i] = e
		return nil
	}
	return ErrEditionStatusChanged
}

func (r *memoryEditionRepository) MaxNumber(ctx context.Context, year int) (int, error) {
	defer r.s.lock()()
	maxNumber := 0
	for _, e := range r.s.data().editions {
		if e.Year == year && e.Number > maxNumber {
			maxNumber = e.Number
		}
	}
	return maxNumber, nil
}

// --- enrollments ---

type memoryEnrollmentRepository struct{ s *MemoryStore }

func (r *memoryEnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	defer r.s.lock()()
	d := r.s.data()
	if !d.hasEdition(e.EditionID) || !d.hasPlayer(e.PlayerID) {
		return ErrInvalidReference
	}
	for _, existing := range d.enrollments {
		if existing.EditionID == e.EditionID && existing.PlayerID == e.PlayerID {
			return ErrEnrollmentConflict
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()
	d.enrollments = append(d.enrollments, *e)
	return nil
}

func (r *memoryEnrollmentRepository) Delete(ctx context.Context, editionID, playerID uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	for i, e := range d.enrollments {
		if e.EditionID == editionID && e.PlayerID == playerID {
			d.enrollments = append(d.enrollments[:i:i], d.enrollments[i+1:]...)
			return nil
		}
	}
	return ErrEnrollmentNotFound
}

func (r *memoryEnrollmentRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Enrollment, error) {
	defer r.s.lock()()
	enrollments := make([]models.Enrollment, 0)
	for _, e := range r.s.data().enrollments {
		if e.EditionID == editionID {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

func (r *memoryEnrollmentRepository) Count(ctx context.Context, editionID uuid.UUID) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, e := range r.s.data().enrollments {
		if e.EditionID == editionID {
			count++
		}
	}
	return count, nil
}

// --- pairs ---

type memoryPairRepository struct{ s *MemoryStore }

func (r *memoryPairRepository) Create(ctx context.Context, p *models.Pair) error {
	defer r.s.lock()()
	d := r.s.data()
	if !d.hasEdition(p.EditionID) || !d.hasPlayer(p.Player1ID) || !d.hasPlayer(p.Player2ID) {
		return ErrInvalidReference
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	d.pairs = append(d.pairs, *p)
	return nil
}

func (r *memoryPairRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pair, error) {
	defer r.s.lock()()
	for _, p := range r.s.data().pairs {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrPairNotFound
}

func (r *memoryPairRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Pair, error) {
	defer r.s.lock()()
	pairs := make([]models.Pair, 0)
	for _, p := range r.s.data().pairs {
		if p.EditionID == editionID {
			pairs = append(pairs, p)
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Position < pairs[j].Position })
	return pairs, nil
}

func (r *memoryPairRepository) Update(ctx context.Context, p *models.Pair) error {
	defer r.s.lock()()
	for i, existing := range r.s.data().pairs {
		if existing.ID != p.ID {
			continue
		}
		existing.Player1ID = p.Player1ID
		existing.Player2ID = p.Player2ID
		existing.CombinedPoints = p.CombinedPoints
		existing.Position = p.Position
		existing.DisplayName = p.DisplayName
		r.s.data().pairs[i] = existing
		return nil
	}
	return ErrPairNotFound
}

func (r *memoryPairRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	for i, p := range d.pairs {
		if p.ID != id {
			continue
		}
		if d.pairReferenced(id) {
			return ErrPairInUse
		}
		d.pairs = append(d.pairs[:i:i], d.pairs[i+1:]...)
		return nil
	}
	return ErrPairNotFound
}

func (r *memoryPairRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	kept := make([]models.Pair, 0, len(d.pairs))
	for _, p := range d.pairs {
		if p.EditionID != editionID {
			kept = append(kept, p)
			continue
		}
		if d.pairReferenced(p.ID) {
			return ErrPairInUse
		}
	}
	d.pairs = kept
	return nil
}

// --- matches ---

type memoryMatchRepository struct{ s *MemoryStore }

func (r *memoryMatchRepository) Create(ctx context.Context, m *models.Match) error {
	defer r.s.lock()()
	d := r.s.data()
	for _, existing := range d.matches {
		if existing.EditionID == m.EditionID && existing.Phase == m.Phase && existing.Position == m.Position {
			return ErrMatchSlotTaken
		}
	}
	for _, id := range []*uuid.UUID{m.Pair1ID, m.Pair2ID, m.WinnerID} {
		if id != nil && !d.hasPair(*id) {
			return ErrInvalidReference
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	d.matches = append(d.matches, cloneMatch(*m))
	return nil
}

func (r *memoryMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	defer r.s.lock()()
	for _, m := range r.s.data().matches {
		if m.ID == id {
			c := cloneMatch(m)
			return &c, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (r *memoryMatchRepository) ListByEdition(ctx context.Context, editionID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error) {
	defer r.s.lock()()
	matches := make([]models.Match, 0)
	for _, m := range r.s.data().matches {
		if m.EditionID != editionID {
			continue
		}
		if filter.Phase != nil && m.Phase != *filter.Phase {
			continue
		}
		matches = append(matches, cloneMatch(m))
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Phase != matches[j].Phase {
			return matches[i].Phase.Rank() < matches[j].Phase.Rank()
		}
		return matches[i].Position < matches[j].Position
	})
	return matches, nil
}

func (r *memoryMatchRepository) UpdateWinner(ctx context.Context, id uuid.UUID, winnerID *uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	if winnerID != nil && !d.hasPair(*winnerID) {
		return ErrInvalidReference
	}
	for i, m := range d.matches {
		if m.ID != id {
			continue
		}
		m.WinnerID = cloneID(winnerID)
		m.UpdatedAt = time.Now().UTC()
		d.matches[i] = m
		return nil
	}
	return ErrMatchNotFound
}

func (r *memoryMatchRepository) UpdateSlots(ctx context.Context, m *models.Match) error {
	defer r.s.lock()()
	d := r.s.data()
	for _, id := range []*uuid.UUID{m.Pair1ID, m.Pair2ID, m.WinnerID} {
		if id != nil && !d.hasPair(*id) {
			return ErrInvalidReference
		}
	}
	for i, existing := range d.matches {
		if existing.ID != m.ID {
			continue
		}
		existing.Pair1ID = cloneID(m.Pair1ID)
		existing.Pair2ID = cloneID(m.Pair2ID)
		existing.WinnerID = cloneID(m.WinnerID)
		existing.UpdatedAt = time.Now().UTC()
		d.matches[i] = existing
		m.UpdatedAt = existing.UpdatedAt
		return nil
	}
	return ErrMatchNotFound
}

func (r *memoryMatchRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	kept := make([]models.Match, 0, len(d.matches))
	for _, m := range d.matches {
		if m.EditionID != editionID {
			kept = append(kept, m)
		}
	}
	d.matches = kept
	return nil
}

func (r *memoryMatchRepository) CountReferencingPair(ctx context.Context, pairID uuid.UUID) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, m := range r.s.data().matches {
		if sameID(m.Pair1ID, pairID) || sameID(m.Pair2ID, pairID) || sameID(m.WinnerID, pairID) {
			count++
		}
	}
	return count, nil
}

// --- pending byes ---

type memoryByeRepository struct{ s *MemoryStore }

func (r *memoryByeRepository) Create(ctx context.Context, b *models.PendingBye) error {
	defer r.s.lock()()
	d := r.s.data()
	if !d.hasPair(b.PairID) {
		return ErrInvalidReference
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()
	d.byes = append(d.byes, *b)
	return nil
}

func (r *memoryByeRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.PendingBye, error) {
	defer r.s.lock()()
	byes := make([]models.PendingBye, 0)
	for _, b := range r.s.data().byes {
		if b.EditionID == editionID {
			byes = append(byes, b)
		}
	}
	sort.SliceStable(byes, func(i, j int) bool { return byes[i].Position < byes[j].Position })
	return byes, nil
}

func (r *memoryByeRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	defer r.s.lock()()
	d := r.s.data()
	kept := make([]models.PendingBye, 0, len(d.byes))
	for _, b := range d.byes {
		if b.EditionID != editionID {
			kept = append(kept, b)
		}
	}
	d.byes = kept
	return nil
}

// --- reference checks, caller holds the lock ---

func (d *memoryData) hasPlayer(id uuid.UUID) bool {
	for _, p := range d.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (d *memoryData) hasEdition(id uuid.UUID) bool {
	for _, e := range d.editions {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (d *memoryData) hasPair(id uuid.UUID) bool {
	for _, p := range d.pairs {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (d *memoryData) pairReferenced(id uuid.UUID) bool {
	for _, m := range d.matches {
		if sameID(m.Pair1ID, id) || sameID(m.Pair2ID, id) || sameID(m.WinnerID, id) {
			return true
		}
	}
	for _, b := range d.byes {
		if b.PairID == id {
			return true
		}
	}
	return false
}
