package notify

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"movesmart/internal/events"
)

// Variations picks randomized copy so repeated notifications to the same
// customer don't read machine-generated. Selection is uniform over small
// hand-authored pools; repeats are possible and fine.
type Variations struct {
	mu       sync.Mutex
	rng      *rand.Rand
	pools    map[string][]string
	subjects map[string][]string
	sms      map[string][]string
}

// NewVariations builds a picker. Pass a seeded rand for deterministic tests;
// nil gets a time-seeded source.
func NewVariations(rng *rand.Rand) *Variations {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Variations{
		rng: rng,
		pools: map[string][]string{
			"greeting": {
				"Hi {name},",
				"Hello {name},",
				"Dear {name},",
				"Good day {name},",
			},
			"booking_created_intro": {
				"Thanks for choosing SmartMove Transport!",
				"Your moving request has been received!",
				"We're excited to help you with your upcoming move.",
				"Thanks for trusting SmartMove Transport with your move!",
			},
			"booking_confirmed_intro": {
				"Great news — your move is officially confirmed.",
				"Your moving date and time are now booked.",
				"Your SmartMove Transport booking is confirmed.",
				"Everything is set for your upcoming move!",
			},
			"booking_cancelled_intro": {
				"Your moving request has been cancelled.",
				"We've processed your cancellation as requested.",
				"Your SmartMove Transport booking has been cancelled.",
				"Your cancellation has been confirmed.",
			},
			"booking_completed_intro": {
				"Your move has been successfully completed!",
				"We're happy to let you know your move is now finished!",
				"Your SmartMove Transport moving service is complete.",
				"Thank you for moving with SmartMove Transport!",
			},
			"closing": {
				"Best regards,",
				"Thank you,",
				"Warm regards,",
				"Sincerely,",
				"With appreciation,",
			},
		},
		subjects: map[string][]string{
			events.EventBookingCreated: {
				"SmartMove Transport – {service} Request Received",
				"Your Moving Request: {service}",
				"Move Request Confirmed – {service}",
				"Thanks for Choosing SmartMove Transport!",
			},
			events.EventBookingConfirmed: {
				"Your Move is Confirmed – {service}",
				"Moving Date Scheduled – {service}",
				"SmartMove Transport Confirmation – {service}",
				"Everything is Set for Your Move!",
			},
			events.EventBookingCancelled: {
				"Move Cancelled – {service}",
				"Cancellation Confirmation – {service}",
				"SmartMove Transport: Booking Cancelled",
				"Your Move Has Been Cancelled",
			},
			events.EventBookingCompleted: {
				"Your Move is Complete – {service}",
				"Moving Service Completed – {service}",
				"SmartMove Transport – Move Completed",
				"Your SmartMove Service Is Finished!",
			},
		},
		sms: map[string][]string{
			events.EventBookingCreated: {
				"Hi {name}! Thanks for booking {service} with SmartMove Transport. We'll contact you within 24 hours to confirm your {date} move.",
				"Hello {name}! Your {service} booking is received. We'll confirm your {date} move soon. Thank you!",
				"Hey {name}! We got your {service} booking for {date}. Our team will reach out within 24 hours to confirm details.",
				"Thanks {name}! Your {service} is booked for {date}. We'll contact you shortly to finalize everything.",
			},
			events.EventBookingConfirmed: {
				"Great news {name}! Your {service} is confirmed for {date} at {time}. See you then!",
				"Confirmed! Your {service} is scheduled for {date} at {time}. We're excited to work with you!",
				"Hello {name}! Your {service} is confirmed for {date} at {time}. Looking forward to it!",
				"All set {name}! Your {service} is booked for {date} at {time}. We'll see you there!",
			},
			events.EventBookingCancelled: {
				"Hi {name}. Your {service} booking for {date} has been cancelled as requested.",
				"Hello {name}. We've cancelled your {service} move for {date}. Hope to serve you another time!",
				"Hi {name}. Your {service} booking on {date} is now cancelled. Let us know if you need to reschedule!",
				"Cancellation confirmed {name}. Your {service} for {date} has been cancelled.",
			},
			events.EventBookingCompleted: {
				"Hi {name}! Your {service} move is complete! Thanks for choosing SmartMove Transport.",
				"Move complete! Your {service} is finished. Thank you for trusting us with your move!",
				"Hello {name}! We've successfully completed your {service}. Hope you love your new place!",
				"All done {name}! Your {service} move is finished. Thank you for your business!",
			},
		},
	}
}

// Pick returns a random variation for the category with placeholders filled
// from context. Unknown categories get a deterministic fallback built from
// the category name.
func (v *Variations) Pick(category string, context map[string]string) string {
	pool, ok := v.pools[category]
	if !ok || len(pool) == 0 {
		return humanize(category)
	}
	return substitute(v.choose(pool), context)
}

// Subject returns a random email subject line for the event.
func (v *Variations) Subject(eventType, serviceName string) string {
	pool, ok := v.subjects[eventType]
	if !ok || len(pool) == 0 {
		return "SmartMove Transport – Update"
	}
	return substitute(v.choose(pool), map[string]string{"service": serviceName})
}

// SMS returns a random SMS body for the event.
func (v *Variations) SMS(eventType string, context map[string]string) string {
	pool, ok := v.sms[eventType]
	if !ok || len(pool) == 0 {
		return humanize(eventType) + ": " + context["service"]
	}
	return substitute(v.choose(pool), context)
}

func (v *Variations) choose(pool []string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return pool[v.rng.Intn(len(pool))]
}

func substitute(text string, context map[string]string) string {
	if len(context) == 0 {
		return text
	}
	pairs := make([]string, 0, len(context)*2)
	for key, value := range context {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func humanize(category string) string {
	return strings.ReplaceAll(strings.TrimSuffix(category, "_intro"), "_", " ")
}
