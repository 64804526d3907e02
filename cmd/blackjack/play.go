package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anchal00/blackjack/internal/client"
)

type PlayCmd struct {
	URL       string `kong:"default='http://localhost:9000',env='BLACKJACK_URL',help='Server base URL'"`
	UserAgent string `kong:"name='user-agent',default='blackjack-cli',help='User agent sent to the server, part of the device identity'"`

	Deal    DealCmd    `cmd:"" help:"Deal a new hand, or show the one in progress"`
	Game    GameCmd    `cmd:"" help:"Show the hand in progress"`
	Hit     HitCmd     `cmd:"" help:"Draw another card"`
	Stand   StandCmd   `cmd:"" help:"Stand and let the dealer play"`
	Stats   StatsCmd   `cmd:"" help:"Show wins, losses and draws"`
	History HistoryCmd `cmd:"" help:"List finished games"`
	Delete  DeleteCmd  `cmd:"" help:"Delete finished games"`
}

func (p *PlayCmd) client() *client.Client {
	return client.New(p.URL, fmt.Sprintf("%s/%s", p.UserAgent, version))
}

type DealCmd struct{}

func (c *DealCmd) Run(p *PlayCmd) error {
	g, err := p.client().Deal(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderGame(g))
	return nil
}

type GameCmd struct {
	Token string `kong:"help='Game token, defaults to the active game of this device'"`
}

func (c *GameCmd) Run(p *PlayCmd) error {
	g, err := p.client().Game(context.Background(), c.Token)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderGame(g))
	return nil
}

type HitCmd struct {
	Token string `kong:"help='Game token, defaults to the active game of this device'"`
}

func (c *HitCmd) Run(p *PlayCmd) error {
	g, err := p.client().Hit(context.Background(), c.Token)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderGame(g))
	return nil
}

type StandCmd struct {
	Token string `kong:"help='Game token, defaults to the active game of this device'"`
}

func (c *StandCmd) Run(p *PlayCmd) error {
	g, err := p.client().Stand(context.Background(), c.Token)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderGame(g))
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(p *PlayCmd) error {
	s, err := p.client().Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderStats(s))
	return nil
}

type HistoryCmd struct {
	Start string `kong:"help='Only games started at or after this time (RFC 3339, YYYY-MM-DD or epoch millis)'"`
}

func (c *HistoryCmd) Run(p *PlayCmd) error {
	history, err := p.client().History(context.Background(), c.Start)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, client.NewStyles().RenderHistory(history))
	return nil
}

type DeleteCmd struct {
	Token string `kong:"arg,optional,help='Delete only this game'"`
	Yes   bool   `kong:"short='y',help='Confirm deletion'"`
}

func (c *DeleteCmd) Run(p *PlayCmd) error {
	if !c.Yes {
		return fmt.Errorf("refusing to delete history without --yes")
	}
	d, err := p.client().Delete(context.Background(), c.Token)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted %d games\n", d.Count)
	return nil
}
