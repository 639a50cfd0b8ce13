package economy

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/storage"
)

type DepositCommand struct{}

func (c *DepositCommand) Name() string        { return "deposit" }
func (c *DepositCommand) Description() string { return "Move coins from your wallet to the bank" }
func (c *DepositCommand) Category() string    { return "💰 Economy" }
func (c *DepositCommand) RequireAdmin() bool  { return false }
func (c *DepositCommand) RequireDev() bool    { return false }

func (c *DepositCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many coins to deposit",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	}
}

func (c *DepositCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	amount := int(core.Options(event)["amount"].IntValue())

	rec, err := context.Store.Deposit(event.GuildID, event.Member.User.ID, amount)
	switch {
	case errors.Is(err, storage.ErrInsufficientCoins):
		return core.RespondEphemeral(session, event, "You don't have that many coins in your wallet.")
	case errors.Is(err, storage.ErrAmountNotPositive):
		return core.RespondEphemeral(session, event, "The amount must be positive.")
	case err != nil:
		return err
	}

	return core.Respond(session, event,
		fmt.Sprintf("🏦 Deposited **%d** coins. Wallet: %d, bank: %d", amount, rec.Coins, rec.Bank))
}

func init() {
	core.RegisterCommand(&DepositCommand{})
}
