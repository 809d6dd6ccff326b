package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/asset"
	"github.com/x-xyz/launchpad/domain/ledger"
)

const ipfsGateway = "https://ipfs.io/ipfs/"

// MessageSender is satisfied by *discordgo.Session
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type CollectionGetter interface {
	GetAsset(c ctx.Ctx, address domain.Address) (*asset.DeployedAsset, error)
}

type TokenURIGetter interface {
	TokenURI(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (string, error)
}

type NameResolver interface {
	ReverseResolve(c ctx.Ctx, address domain.Address) (string, error)
}

type SaleNotifierConfig struct {
	DiscordBotKey    string
	DiscordChannelId string
	Collections      CollectionGetter
	Tokens           TokenURIGetter
	// Names is optional
	Names NameResolver
	// Sender overrides the discord session built from DiscordBotKey
	Sender MessageSender
	// Pool sends asynchronously when set
	Pool *goroutines.Pool
}

type saleNotifierHandler struct {
	config SaleNotifierConfig
	sender MessageSender
}

// NewSaleNotifierHandler posts one discord embed per Sold event
func NewSaleNotifierHandler(config SaleNotifierConfig) (EventHandler, error) {
	sender := config.Sender
	if sender == nil {
		session, err := discordgo.New(fmt.Sprintf("Bot %s", config.DiscordBotKey))
		if err != nil {
			return nil, err
		}
		sender = session
	}
	return &saleNotifierHandler{config, sender}, nil
}

func (h *saleNotifierHandler) Events() []string {
	return []string{"Sold"}
}

func (h *saleNotifierHandler) ProcessEvents(c ctx.Ctx, logs []*ledger.EventLog) error {
	for _, l := range logs {
		raw, err := l.ToLog()
		if err != nil {
			c.WithFields(log.Fields{"l": l, "err": err}).Error("ToLog failed")
			return err
		}
		evt, err := abi.ToSoldLog(raw)
		if err != nil {
			c.WithFields(log.Fields{"l": l, "err": err}).Error("ToSoldLog failed")
			return err
		}
		msg := h.saleMessage(c, l, evt)
		if err := h.send(c, msg); err != nil {
			c.WithFields(log.Fields{"txHash": l.TxHash, "err": err}).Error("failed to send sale message")
			return err
		}
	}
	return nil
}

func (h *saleNotifierHandler) send(c ctx.Ctx, msg *discordgo.MessageEmbed) error {
	if h.config.Pool == nil {
		_, err := h.sender.ChannelMessageSendEmbed(h.config.DiscordChannelId, msg)
		return err
	}
	return h.config.Pool.ScheduleWithTimeout(3*time.Second, func() {
		if _, err := h.sender.ChannelMessageSendEmbed(h.config.DiscordChannelId, msg); err != nil {
			c.WithFields(log.Fields{"title": msg.Title, "err": err}).Error("ChannelMessageSendEmbed failed")
		}
	})
}

func (h *saleNotifierHandler) saleMessage(c ctx.Ctx, l *ledger.EventLog, evt *abi.SoldLog) *discordgo.MessageEmbed {
	collection := domain.AddressFromCommon(evt.Collection)
	tokenId := domain.TokenIdFromBig(evt.TokenId)

	title := fmt.Sprintf("%s #%s sold!", collection, tokenId)
	if a, err := h.config.Collections.GetAsset(c, collection); err == nil {
		title = fmt.Sprintf("%s (%s) #%s sold!", a.Name, a.Symbol, tokenId)
	} else {
		c.WithFields(log.Fields{"collection": collection, "err": err}).Warn("GetAsset failed")
	}

	msg := &discordgo.MessageEmbed{
		Title:     title,
		Timestamp: l.BlockTime.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: h.display(c, domain.AddressFromCommon(evt.Seller))},
			{Name: "Buyer", Value: h.display(c, domain.AddressFromCommon(evt.Buyer))},
			{Name: "Price", Value: fmt.Sprintf("%s ETH", domain.FormatEther(evt.Price))},
			{Name: "Transaction", Value: string(l.TxHash)},
		},
	}
	if uri, err := h.config.Tokens.TokenURI(c, collection, tokenId); err == nil && uri != "" {
		msg.URL = strings.Replace(uri, "ipfs://", ipfsGateway, 1)
	}
	return msg
}

func (h *saleNotifierHandler) display(c ctx.Ctx, address domain.Address) string {
	alias := "-"
	if h.config.Names != nil {
		if name, err := h.config.Names.ReverseResolve(c, address); err == nil && name != "" {
			alias = name
		}
	}
	return fmt.Sprintf("%s (%s)", address, alias)
}
