package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	s, err := New(path, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, path
}

func TestLevelDefaultIsNotPersistedByRead(t *testing.T) {
	s, path := newTestStore(t)

	rec := s.Level("g1", "u1")
	if rec.Level != 1 || rec.XP != 0 || rec.LastMessageAt != 0 {
		t.Fatalf("unexpected default: %+v", rec)
	}

	// A read-only path must not create the durable file.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("read persisted the default")
	}

	if err := s.SetLevel("g1", "u1", rec); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("set did not persist: %v", err)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := LevelRecord{Level: 4, XP: 42, LastMessageAt: 1000}
	if err := s.SetLevel("g1", "u1", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Level("g1", "u1"); got != in {
		t.Fatalf("round trip mismatch: %+v != %+v", got, in)
	}

	// Distinct guilds do not share records.
	if got := s.Level("g2", "u1"); got.Level != 1 {
		t.Fatalf("guild partition leak: %+v", got)
	}
}

func TestWarningsCopyIsolation(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Unix(5000, 0)

	if _, _, err := s.AddWarning("g1", "u1", "spam", "mod1", now); err != nil {
		t.Fatalf("add warning: %v", err)
	}

	list := s.Warnings("g1", "u1")
	list[0].Reason = "mutated"

	if got := s.Warnings("g1", "u1"); got[0].Reason != "spam" {
		t.Fatalf("stored warning mutated through returned copy: %+v", got[0])
	}
}

func TestInventoryCopyIsolation(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddToInventory("g1", "u1", "vip", time.Unix(1, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}

	inv := s.Inventory("g1", "u1")
	inv["vip"] = InventoryEntry{Quantity: 99}
	delete(inv, "vip")

	got := s.Inventory("g1", "u1")
	if got["vip"].Quantity != 1 {
		t.Fatalf("stored inventory mutated through returned copy: %+v", got)
	}
}

func TestInventoryRepeatPurchaseIncrementsQuantity(t *testing.T) {
	s, _ := newTestStore(t)

	_ = s.AddToInventory("g1", "u1", "bait", time.Unix(1, 0))
	_ = s.AddToInventory("g1", "u1", "bait", time.Unix(2, 0))

	got := s.Inventory("g1", "u1")["bait"]
	if got.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", got.Quantity)
	}
	if got.PurchasedAt != 1 {
		t.Fatalf("first purchase time overwritten: %d", got.PurchasedAt)
	}
}

func TestEconomyInvariants(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.Deposit("g1", "u1", 10); err != ErrInsufficientCoins {
		t.Fatalf("deposit from empty wallet: %v", err)
	}
	if _, err := s.Withdraw("g1", "u1", 10); err != ErrInsufficientBank {
		t.Fatalf("withdraw from empty bank: %v", err)
	}
	if _, err := s.AddCoins("g1", "u1", 0); err != ErrAmountNotPositive {
		t.Fatalf("zero credit accepted: %v", err)
	}
	if _, err := s.AddCoins("g1", "u1", -5); err != ErrAmountNotPositive {
		t.Fatalf("negative credit accepted: %v", err)
	}

	if _, err := s.AddCoins("g1", "u1", 100); err != nil {
		t.Fatalf("add coins: %v", err)
	}
	if _, err := s.Deposit("g1", "u1", 60); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	rec := s.Economy("g1", "u1")
	if rec.Coins != 40 || rec.Bank != 60 {
		t.Fatalf("after deposit: %+v", rec)
	}

	if _, err := s.SpendCoins("g1", "u1", 41); err != ErrInsufficientCoins {
		t.Fatalf("overdraft spend accepted: %v", err)
	}
	if _, err := s.SpendCoins("g1", "u1", 0); err != ErrAmountNotPositive {
		t.Fatalf("zero spend accepted: %v", err)
	}

	// A rejected transfer leaves both sides untouched.
	if err := s.Transfer("g1", "u1", "u2", 50); err != ErrInsufficientCoins {
		t.Fatalf("overdraft transfer: %v", err)
	}
	if got := s.Economy("g1", "u1"); got.Coins != 40 {
		t.Fatalf("partial debit after rejected transfer: %+v", got)
	}
	if got := s.Economy("g1", "u2"); got.Coins != 0 {
		t.Fatalf("partial credit after rejected transfer: %+v", got)
	}

	if err := s.Transfer("g1", "u1", "u2", 40); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := s.Economy("g1", "u2"); got.Coins != 40 {
		t.Fatalf("transfer not applied: %+v", got)
	}
}

func TestShopItemValidation(t *testing.T) {
	s, _ := newTestStore(t)

	item := ShopItem{Name: "VIP", Price: 100, Type: "badge", CreatorID: "u9"}
	if err := s.CreateShopItem("g1", "vip", item); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateShopItem("g1", "vip", item); err != ErrDuplicateItem {
		t.Fatalf("duplicate id accepted: %v", err)
	}
	if err := s.CreateShopItem("g1", "free", ShopItem{Name: "Free", Price: 0, Type: "badge"}); err != ErrInvalidItem {
		t.Fatalf("zero price accepted: %v", err)
	}
	if err := s.CreateShopItem("g1", "mod", ShopItem{Name: "Mod", Price: 10, Type: "role"}); err != ErrInvalidItem {
		t.Fatalf("role item without role id accepted: %v", err)
	}

	if err := s.CreateShopItem("g1", "gadget", ShopItem{Name: "Gadget", Price: 10, Type: "gadget"}); err != ErrInvalidItem {
		t.Fatalf("unknown item type accepted: %v", err)
	}
	if err := s.CreateShopItem("g1", "untyped", ShopItem{Name: "Untyped", Price: 10}); err != ErrInvalidItem {
		t.Fatalf("missing item type accepted: %v", err)
	}

	// Emoji length is counted in runes; one ZWJ family sequence is 25 bytes
	// but well under the limit.
	family := ShopItem{Name: "Family", Price: 10, Type: ItemTypeBadge, Emoji: "👨‍👩‍👧‍👦"}
	if err := s.CreateShopItem("g1", "family", family); err != nil {
		t.Fatalf("multi-codepoint emoji rejected: %v", err)
	}
	long := ShopItem{Name: "Long", Price: 10, Type: ItemTypeBadge, Emoji: "aaaaaaaaaaa"}
	if err := s.CreateShopItem("g1", "long", long); err != ErrInvalidItem {
		t.Fatalf("over-long emoji accepted: %v", err)
	}

	if err := s.DeleteShopItem("g1", "missing"); err != ErrNotFound {
		t.Fatalf("delete missing: %v", err)
	}
	if err := s.DeleteShopItem("g1", "vip"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.ShopItem("g1", "vip"); err != ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestPurchaseItemOwnershipRules(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Unix(100, 0)

	_ = s.CreateShopItem("g1", "vip", ShopItem{Name: "VIP", Price: 50, Type: ItemTypeBadge})
	_ = s.CreateShopItem("g1", "bait", ShopItem{Name: "Bait", Price: 20, Type: ItemTypeConsumable})
	_ = s.CreateShopItem("g1", "mod", ShopItem{Name: "Mod", Price: 30, Type: ItemTypeRole, RoleID: "r1"})

	// A rejected purchase leaves wallet and inventory untouched.
	if _, err := s.PurchaseItem("g1", "u1", "vip", now); err != ErrInsufficientCoins {
		t.Fatalf("purchase from empty wallet: %v", err)
	}
	if len(s.Inventory("g1", "u1")) != 0 {
		t.Fatalf("inventory written on rejected purchase")
	}

	if _, err := s.PurchaseItem("g1", "u1", "missing", now); err != ErrNotFound {
		t.Fatalf("purchase of missing item: %v", err)
	}

	_, _ = s.AddCoins("g1", "u1", 500)

	// Badges and roles can only be owned once.
	if _, err := s.PurchaseItem("g1", "u1", "vip", now); err != nil {
		t.Fatalf("first badge purchase: %v", err)
	}
	if _, err := s.PurchaseItem("g1", "u1", "vip", now); err != ErrAlreadyOwned {
		t.Fatalf("badge re-buy accepted: %v", err)
	}
	if got := s.Economy("g1", "u1"); got.Coins != 450 {
		t.Fatalf("rejected re-buy touched the wallet: %+v", got)
	}

	if _, err := s.PurchaseItem("g1", "u1", "mod", now); err != nil {
		t.Fatalf("first role purchase: %v", err)
	}
	if _, err := s.PurchaseItem("g1", "u1", "mod", now); err != ErrAlreadyOwned {
		t.Fatalf("role re-buy accepted: %v", err)
	}

	// Consumables stack.
	if _, err := s.PurchaseItem("g1", "u1", "bait", now); err != nil {
		t.Fatalf("first consumable purchase: %v", err)
	}
	if _, err := s.PurchaseItem("g1", "u1", "bait", now.Add(time.Minute)); err != nil {
		t.Fatalf("consumable re-buy rejected: %v", err)
	}
	if got := s.Inventory("g1", "u1")["bait"]; got.Quantity != 2 {
		t.Fatalf("consumable quantity = %d, want 2", got.Quantity)
	}
	if got := s.Economy("g1", "u1"); got.Coins != 500-50-30-20-20 {
		t.Fatalf("wallet after purchases: %+v", got)
	}
}

func TestUpdateEconomyKeepsConcurrentMutations(t *testing.T) {
	s, _ := newTestStore(t)

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, _ = s.UpdateEconomy("g1", "u1", func(rec EconomyRecord) EconomyRecord {
					rec.Coins++
					rec.TotalGambled++
					return rec
				})
			}
		}()
	}
	wg.Wait()

	got := s.Economy("g1", "u1")
	if got.Coins != workers*perWorker || got.TotalGambled != workers*perWorker {
		t.Fatalf("lost updates: %+v", got)
	}
}

func TestClearOperationsAreIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.ClearWarnings("g1", "u1"); err != nil {
		t.Fatalf("clear absent warnings: %v", err)
	}
	if err := s.ClearLeaderboard("g1"); err != nil {
		t.Fatalf("clear absent leaderboard: %v", err)
	}
	if err := s.RemoveReactionRole("g1", "m1", "👍"); err != nil {
		t.Fatalf("remove absent reaction role: %v", err)
	}
}

func TestReopenPreservesRecords(t *testing.T) {
	s, path := newTestStore(t)

	_ = s.SetLevel("g1", "u1", LevelRecord{Level: 7, XP: 12})
	_, _ = s.AddCoins("g1", "u1", 300)
	_ = s.SetLastVideoID("g1", "vid123")
	_ = s.SetLeaderboard("g1", LeaderboardPointer{ChannelID: "c1", MessageID: "m1"})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := New(path, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Level("g1", "u1"); got.Level != 7 || got.XP != 12 {
		t.Fatalf("level lost on reopen: %+v", got)
	}
	if got := reopened.Economy("g1", "u1"); got.Coins != 300 {
		t.Fatalf("economy lost on reopen: %+v", got)
	}
	if got := reopened.LastVideoID("g1"); got != "vid123" {
		t.Fatalf("feed cursor lost on reopen: %q", got)
	}
	if _, ok := reopened.Leaderboard("g1"); !ok {
		t.Fatalf("leaderboard pointer lost on reopen")
	}
}

func TestCorruptFileFallsBackToEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	if err := os.WriteFile(path, []byte("%%% not json"), 0644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	s, err := New(path, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if got := s.Level("g1", "u1"); got.Level != 1 {
		t.Fatalf("expected defaults after fallback: %+v", got)
	}
}

func TestDurableLayout(t *testing.T) {
	s, path := newTestStore(t)

	_ = s.SetLevel("g1", "u1", LevelRecord{Level: 2, XP: 30, LastMessageAt: 99})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"levels", "economy", "warnings", "inventory", "shop_items", "leaderboard_messages", "lastVideoId"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("missing top-level category %q", key)
		}
	}

	var levels map[string]map[string]map[string]any
	if err := json.Unmarshal(doc["levels"], &levels); err != nil {
		t.Fatalf("levels layout: %v", err)
	}
	if levels["g1"]["u1"]["lastMessage"] != float64(99) {
		t.Fatalf("unexpected level encoding: %v", levels["g1"]["u1"])
	}
}
