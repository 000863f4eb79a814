package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/rentadmin/pkg/config"
	"github.com/dmitrymomot/rentadmin/pkg/mongo"
	"github.com/dmitrymomot/rentadmin/pkg/notifications"
)

func notifyCommand() *cli.Command {
	return &cli.Command{
		Name:        "notify",
		Usage:       "Store an admin message notification",
		Description: "Creates a notification visible on the recipients' next poll or reconnect. Without --user and --role it is addressed to everyone.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "recipient user id"},
			&cli.StringFlag{Name: "role", Usage: "recipient role"},
			&cli.StringFlag{Name: "title", Usage: "notification title", Required: true},
			&cli.StringFlag{Name: "message", Usage: "notification body", Required: true},
			&cli.StringFlag{Name: "url", Usage: "optional action URL"},
		},
		Action: runNotify,
	}
}

func runNotify(c *cli.Context) error {
	app, err := loadAppConfig()
	if err != nil {
		return err
	}
	var mongoCfg mongo.Config
	if err := config.Load(&mongoCfg); err != nil {
		return err
	}
	log := setupLogging(app)
	ctx := c.Context

	db, err := mongo.Open(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	// This process has no live connections; the record is picked up on the next poll.
	dispatcher := notifications.NewDispatcher(notifications.NewMongoStorage(db), nil,
		notifications.WithDispatcherLogger(log),
	)

	in := notifications.AdminMessage(c.String("user"), c.String("role"), c.String("title"), c.String("message"))
	in.ActionURL = c.String("url")

	n, err := dispatcher.CreateAndPush(ctx, in)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, n.ID)
	return err
}
