package model

import "time"

// Seed returns the built-in content set. It is served whenever the remote
// store is unreachable or empty, so the feed never renders blank because of
// connectivity alone. Every seed item is public and system-owned.
func Seed() []Item {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	q := func(n int, text, author string, moods ...string) Item {
		return Item{
			ID:        "seed-" + string(rune('0'+n/10)) + string(rune('0'+n%10)),
			Text:      text,
			Author:    author,
			Moods:     moods,
			CreatedAt: day(n),
			UserID:    SystemUser,
			Public:    true,
			Variant:   VariantQuote,
		}
	}

	return []Item{
		q(1, "It is remarkable how much long-term advantage people like us have gotten by trying to be consistently not stupid, instead of trying to be very intelligent.", "Charlie Munger", "excited", "reflection"),
		q(2, "The big money is not in the buying and selling, but in the waiting.", "Charlie Munger", "not-my-day", "reflection"),
		q(3, "Stay hungry, stay foolish.", "Steve Jobs", "innovation", "excited"),
		q(4, "Innovation distinguishes between a leader and a follower.", "Steve Jobs", "innovation"),
		q(5, "Your work is going to fill a large part of your life, and the only way to be truly satisfied is to do what you believe is great work.", "Steve Jobs", "reflection", "not-my-day"),
		q(6, "When something is important enough, you do it even if the odds are not in your favor.", "Elon Musk", "not-my-day", "innovation"),
		q(7, "Failure is an option here. If things are not failing, you are not innovating enough.", "Elon Musk", "innovation", "not-my-day"),
		q(8, "Monopoly is the condition of every successful business.", "Peter Thiel", "innovation", "excited"),
		q(9, "We wanted flying cars, instead we got 140 characters.", "Peter Thiel", "innovation", "reflection"),
		q(10, "The next Bill Gates will not build an operating system. The next Larry Page or Sergey Brin will not make a search engine.", "Peter Thiel", "innovation"),
		q(11, "The greatest originals are the ones who fail the most, because they are the ones who try the most.", "Adam Grant", "not-my-day", "innovation"),
		q(12, "Being original does not require being first. It just means being different and better.", "Adam Grant", "innovation", "excited"),
		q(13, "An investment in knowledge pays the best interest.", "Benjamin Franklin", "reflection", "not-my-day"),
		q(14, "By failing to prepare, you are preparing to fail.", "Benjamin Franklin", "excited", "reflection"),
		q(15, "Happiness is not a destination, it is a way of traveling.", "Björn Natthiko Lindeblad", "reflection", "not-my-day"),
		q(16, "The most important thing is not what happens to you, but how you choose to respond.", "Björn Natthiko Lindeblad", "not-my-day", "reflection"),
		q(17, "The future is not some place we are going, but one we are creating.", "Kevin Kelly", "innovation", "excited"),
		q(18, "Over the long term, the future is decided by optimists.", "Kevin Kelly", "not-my-day", "reflection"),
		q(19, "The more you know, the more you realize you know nothing.", "Socrates", "excited"),
		q(20, "Confidence is important, but overconfidence is dangerous.", "Warren Buffett", "excited"),
	}
}
