package storage

import "errors"

var (
	// ErrAmountNotPositive rejects zero or negative amounts.
	ErrAmountNotPositive = errors.New("amount must be positive")
	// ErrInsufficientCoins rejects operations that would drive the wallet negative.
	ErrInsufficientCoins = errors.New("not enough coins")
	// ErrInsufficientBank rejects operations that would drive the bank negative.
	ErrInsufficientBank = errors.New("not enough coins in the bank")
)

// Economy returns the member's economy record, or the default for a member
// that has never been written. The default is not persisted by the read.
func (s *Store) Economy(guildID, userID string) EconomyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.economyLocked(guildID, userID)
}

func (s *Store) economyLocked(guildID, userID string) EconomyRecord {
	if users, ok := s.doc.Economy[guildID]; ok {
		if rec, ok := users[userID]; ok {
			return rec
		}
	}
	return EconomyRecord{}
}

// SetEconomy replaces the member's economy record and persists.
func (s *Store) SetEconomy(guildID, userID string, rec EconomyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEconomyLocked(guildID, userID, rec)
	return s.save()
}

func (s *Store) setEconomyLocked(guildID, userID string, rec EconomyRecord) {
	users, ok := s.doc.Economy[guildID]
	if !ok {
		users = map[string]EconomyRecord{}
		s.doc.Economy[guildID] = users
	}
	users[userID] = rec
}

// AddCoins credits the wallet. Used by rewards and level-up grants.
func (s *Store) AddCoins(guildID, userID string, amount int) (EconomyRecord, error) {
	if amount <= 0 {
		return EconomyRecord{}, ErrAmountNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.economyLocked(guildID, userID)
	rec.Coins += amount
	s.setEconomyLocked(guildID, userID, rec)
	return rec, s.save()
}

// SpendCoins debits the wallet, rejecting before mutation if the balance is
// insufficient.
func (s *Store) SpendCoins(guildID, userID string, amount int) (EconomyRecord, error) {
	if amount <= 0 {
		return EconomyRecord{}, ErrAmountNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.economyLocked(guildID, userID)
	if rec.Coins < amount {
		return rec, ErrInsufficientCoins
	}
	rec.Coins -= amount
	s.setEconomyLocked(guildID, userID, rec)
	return rec, s.save()
}

// Deposit moves coins from wallet to bank atomically.
func (s *Store) Deposit(guildID, userID string, amount int) (EconomyRecord, error) {
	if amount <= 0 {
		return EconomyRecord{}, ErrAmountNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.economyLocked(guildID, userID)
	if rec.Coins < amount {
		return rec, ErrInsufficientCoins
	}
	rec.Coins -= amount
	rec.Bank += amount
	s.setEconomyLocked(guildID, userID, rec)
	return rec, s.save()
}

// Withdraw moves coins from bank to wallet atomically.
func (s *Store) Withdraw(guildID, userID string, amount int) (EconomyRecord, error) {
	if amount <= 0 {
		return EconomyRecord{}, ErrAmountNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.economyLocked(guildID, userID)
	if rec.Bank < amount {
		return rec, ErrInsufficientBank
	}
	rec.Bank -= amount
	rec.Coins += amount
	s.setEconomyLocked(guildID, userID, rec)
	return rec, s.save()
}

// UpdateEconomy applies a read-modify-write to the member's record under the
// store lock, so concurrent mutations of the same record cannot lose updates.
func (s *Store) UpdateEconomy(guildID, userID string, apply func(EconomyRecord) EconomyRecord) (EconomyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := apply(s.economyLocked(guildID, userID))
	s.setEconomyLocked(guildID, userID, rec)
	return rec, s.save()
}

// Transfer moves wallet coins between two members of the same guild. Either
// both balances change or neither does.
func (s *Store) Transfer(guildID, fromUserID, toUserID string, amount int) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.economyLocked(guildID, fromUserID)
	if from.Coins < amount {
		return ErrInsufficientCoins
	}
	to := s.economyLocked(guildID, toUserID)

	from.Coins -= amount
	to.Coins += amount
	s.setEconomyLocked(guildID, fromUserID, from)
	s.setEconomyLocked(guildID, toUserID, to)
	return s.save()
}
