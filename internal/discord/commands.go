package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

// syncCommands reconciles a guild's slash commands with the registry:
// obsolete remote commands are deleted, changed or new ones re-registered.
// A hash cache on disk skips re-registration when nothing changed.
func (b *Bot) syncCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	remote, _ := b.session.ApplicationCommands(appID, guildID)
	local := buildDefinitions()

	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	hashes := b.loadCommandHashes(guildID)

	for _, rc := range remote {
		if _, exists := localNames[rc.Name]; exists {
			continue
		}
		b.log.Info().Str("guild", guildID).Str("command", rc.Name).Msg("deleting obsolete command")
		if err := b.session.ApplicationCommandDelete(appID, guildID, rc.ID); err != nil {
			b.log.Error().Err(err).Str("command", rc.Name).Msg("delete failed")
			continue
		}
		delete(hashes, rc.Name)
	}

	var changed int
	for _, d := range local {
		h := hashCommand(d)
		if hashes[d.Name] == h {
			continue
		}
		if _, err := b.session.ApplicationCommandCreate(appID, guildID, d); err != nil {
			b.log.Error().Err(err).Str("command", d.Name).Msg("register failed")
			continue
		}
		hashes[d.Name] = h
		changed++
		time.Sleep(25 * time.Millisecond) // stay well under the REST rate limit
	}
	if changed > 0 {
		b.log.Info().Str("guild", guildID).Int("count", changed).Msg("slash commands registered")
	}

	b.saveCommandHashes(guildID, hashes)
	return nil
}

func buildDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range core.AllCommands() {
		sp, ok := cmd.(core.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}

func (b *Bot) appID() (string, error) {
	if id := b.session.State.User.ID; id != "" {
		return id, nil
	}
	u, err := b.session.User("@me")
	if err != nil {
		return "", fmt.Errorf("fetch bot user: %w", err)
	}
	return u.ID, nil
}

// --- hash cache, one JSON file per guild next to the datastore ---

func (b *Bot) commandHashPath(guildID string) string {
	return filepath.Join(filepath.Dir(b.cfg.StoragePath), "commands", guildID+".json")
}

func (b *Bot) loadCommandHashes(guildID string) map[string]string {
	out := make(map[string]string)
	if data, err := os.ReadFile(b.commandHashPath(guildID)); err == nil {
		_ = json.Unmarshal(data, &out)
	}
	return out
}

func (b *Bot) saveCommandHashes(guildID string, hashes map[string]string) {
	path := b.commandHashPath(guildID)
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if data, err := json.MarshalIndent(hashes, "", "  "); err == nil {
		_ = os.WriteFile(path, data, 0o644)
	}
}

// hashCommand returns a deterministic digest of a command's stable fields,
// used to decide whether re-registration is needed.
func hashCommand(c *discordgo.ApplicationCommand) string {
	stable := map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"type":        c.Type,
	}
	if len(c.Options) > 0 {
		stable["options"] = normalizeOptions(c.Options)
	}
	data, _ := json.Marshal(stable)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
