package economy

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/storage"
)

type WithdrawCommand struct{}

func (c *WithdrawCommand) Name() string        { return "withdraw" }
func (c *WithdrawCommand) Description() string { return "Move coins from the bank to your wallet" }
func (c *WithdrawCommand) Category() string    { return "💰 Economy" }
func (c *WithdrawCommand) RequireAdmin() bool  { return false }
func (c *WithdrawCommand) RequireDev() bool    { return false }

func (c *WithdrawCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many coins to withdraw",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	}
}

func (c *WithdrawCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	amount := int(core.Options(event)["amount"].IntValue())

	rec, err := context.Store.Withdraw(event.GuildID, event.Member.User.ID, amount)
	switch {
	case errors.Is(err, storage.ErrInsufficientBank):
		return core.RespondEphemeral(session, event, "You don't have that many coins in the bank.")
	case errors.Is(err, storage.ErrAmountNotPositive):
		return core.RespondEphemeral(session, event, "The amount must be positive.")
	case err != nil:
		return err
	}

	return core.Respond(session, event,
		fmt.Sprintf("💵 Withdrew **%d** coins. Wallet: %d, bank: %d", amount, rec.Coins, rec.Bank))
}

func init() {
	core.RegisterCommand(&WithdrawCommand{})
}
