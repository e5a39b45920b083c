package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/researchaccelerator-hub/video-aggregator/aggregator"
	"github.com/researchaccelerator-hub/video-aggregator/common"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// writeList prints a list result and turns a degraded result into an error
// so the process exits non-zero
func writeList[T any](c *cli, res *aggregator.AggregateResult[T], render func(io.Writer, []T, time.Time)) error {
	if c.v.GetString("output") == "text" {
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		render(tw, res.Items, res.FetchedAt)
		if err := tw.Flush(); err != nil {
			return err
		}
	} else if err := writeJSON(c.out, res); err != nil {
		return err
	}

	if res.Degraded {
		return errDegraded
	}
	return nil
}

// writeSingle prints one resource or returns the fetch failure
func writeSingle[T any](c *cli, item *T, err error, render func(io.Writer, T)) error {
	if err != nil {
		return err
	}
	if c.v.GetString("output") == "text" {
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		render(tw, *item)
		return tw.Flush()
	}
	return writeJSON(c.out, item)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func renderCategories(w io.Writer, categories []youtube.Category, _ time.Time) {
	for _, cat := range categories {
		renderCategory(w, cat)
	}
}

func renderCategory(w io.Writer, cat youtube.Category) {
	fmt.Fprintf(w, "%s\t%s\n", cat.ID, cat.Title)
}

func renderVideos(w io.Writer, videos []youtube.YouTubeVideo, now time.Time) {
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			v.Title,
			v.ChannelTitle,
			aggregator.FormatDuration(v.Duration),
			common.FormatViews(v.ViewCount),
			common.TimeAgo(v.PublishedAt, now))
	}
}

func renderVideo(w io.Writer, v youtube.YouTubeVideo) {
	fmt.Fprintf(w, "Title:\t%s\n", v.Title)
	fmt.Fprintf(w, "Channel:\t%s (%s)\n", v.ChannelTitle, v.ChannelID)
	fmt.Fprintf(w, "Duration:\t%s\n", aggregator.FormatDuration(v.Duration))
	fmt.Fprintf(w, "Views:\t%s\n", common.FormatFullCount(v.ViewCount))
	fmt.Fprintf(w, "Likes:\t%s\n", common.FormatCount(v.LikeCount))
	fmt.Fprintf(w, "Published:\t%s\n", common.TimeAgo(v.PublishedAt, time.Now()))
	if avatar := v.ChannelThumbnails.Best(); avatar != "" {
		fmt.Fprintf(w, "Avatar:\t%s\n", avatar)
	}
}

func renderSearchItems(w io.Writer, items []youtube.SearchItem, now time.Time) {
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			item.VideoID,
			item.Title,
			item.ChannelTitle,
			common.TimeAgo(item.PublishedAt, now))
	}
}

func renderLines(w io.Writer, lines []string, _ time.Time) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func renderComments(w io.Writer, threads []youtube.CommentThread, now time.Time) {
	for _, t := range threads {
		top := t.TopLevelComment
		fmt.Fprintf(w, "%s\t%s\t%s\n", top.AuthorDisplayName, common.TimeAgo(top.PublishedAt, now), top.TextOriginal)
		for _, reply := range t.Replies {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", reply.AuthorDisplayName, common.TimeAgo(reply.PublishedAt, now), reply.TextOriginal)
		}
	}
}

func renderChannel(w io.Writer, ch youtube.YouTubeChannel) {
	fmt.Fprintf(w, "Channel:\t[%s] %s (%s)\n", youtube.ChannelInitial(ch.Title), ch.Title, ch.ID)
	if ch.CustomURL != "" {
		fmt.Fprintf(w, "Handle:\t%s\n", ch.CustomURL)
	}
	if ch.HiddenSubscriberCount {
		fmt.Fprintf(w, "Subscribers:\thidden\n")
	} else {
		fmt.Fprintf(w, "Subscribers:\t%s\n", common.FormatSubscribers(ch.SubscriberCount))
	}
	fmt.Fprintf(w, "Videos:\t%s\n", common.FormatFullCount(ch.VideoCount))
	fmt.Fprintf(w, "Views:\t%s\n", common.FormatFullCount(ch.ViewCount))
	if ch.Country != "" {
		fmt.Fprintf(w, "Country:\t%s\n", ch.Country)
	}
	if email := ch.Email(); email != "" {
		fmt.Fprintf(w, "Email:\t%s\n", email)
	}
	if keywords := ch.KeywordTokens(0); len(keywords) > 0 {
		fmt.Fprintf(w, "Keywords:\t%s\n", strings.Join(keywords, ", "))
	}
	if avatar := ch.AvatarURL(); avatar != "" {
		fmt.Fprintf(w, "Avatar:\t%s\n", avatar)
	}
	if ch.BannerURL != "" {
		fmt.Fprintf(w, "Banner:\t%s\n", ch.BannerURL)
	}
}
