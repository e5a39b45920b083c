package cmd

import (
	"github.com/spf13/cobra"
)

func (c *cli) commands() []*cobra.Command {
	var byCustomName bool

	channel := &cobra.Command{
		Use:   "channel <channelID>",
		Short: "Show a channel's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if byCustomName {
				ch, err := c.agg.ChannelByCustomName(cmd.Context(), args[0])
				return writeSingle(c, ch, err, renderChannel)
			}
			ch, err := c.agg.ChannelDetails(cmd.Context(), args[0])
			return writeSingle(c, ch, err, renderChannel)
		},
	}
	channel.Flags().BoolVar(&byCustomName, "custom-name", false, "treat the argument as a legacy custom channel name")

	return []*cobra.Command{
		{
			Use:   "categories",
			Short: "List the video categories of the region",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.Categories(cmd.Context()), renderCategories)
			},
		},
		{
			Use:   "category <categoryID>",
			Short: "Show one video category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := c.agg.Category(cmd.Context(), args[0])
				return writeSingle(c, cat, err, renderCategory)
			},
		},
		{
			Use:   "videos <categoryID>",
			Short: "List the most popular videos of a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.VideosByCategory(cmd.Context(), args[0]), renderVideos)
			},
		},
		{
			Use:   "search <query>",
			Short: "Search videos",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.Search(cmd.Context(), args[0]), renderSearchItems)
			},
		},
		{
			Use:   "suggest <query>",
			Short: "List search suggestions for a partial query",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.Suggestions(cmd.Context(), args[0]), renderLines)
			},
		},
		{
			Use:   "shorts",
			Short: "List short videos",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.Shorts(cmd.Context()), renderVideos)
			},
		},
		{
			Use:   "video <videoID>",
			Short: "Show a video's details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := c.agg.VideoDetails(cmd.Context(), args[0])
				return writeSingle(c, v, err, renderVideo)
			},
		},
		{
			Use:   "related <videoID>",
			Short: "List videos related to a video",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.RelatedVideos(cmd.Context(), args[0]), renderVideos)
			},
		},
		{
			Use:   "comments <videoID>",
			Short: "List a video's comment threads",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.Comments(cmd.Context(), args[0]), renderComments)
			},
		},
		channel,
		{
			Use:   "channel-videos <channelID>",
			Short: "List a channel's latest uploads",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeList(c, c.agg.ChannelVideos(cmd.Context(), args[0]), renderVideos)
			},
		},
	}
}
