package telegram

import (
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publisher is the part of *amqp091.Channel the notifier uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type bookingNotifier struct {
	Channel publisher
	Queue   string
	Log     *zap.Logger
}

var (
	bookingNotifierInstance contracts.BookingNotifier
	onceBookingNotifier     sync.Once
	bookingNotifierError    error
)

// NewBookingNotifier publishes booking outcomes to queue for the Telegram bot.
// The queue is declared durable on first use.
func NewBookingNotifier(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.BookingNotifier, error) {
	onceBookingNotifier.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			bookingNotifierError = err
			return
		}
		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			bookingNotifierError = err
			return
		}
		bookingNotifierInstance = &bookingNotifier{
			Channel: channel,
			Queue:   queue,
			Log:     logger,
		}
	})
	return bookingNotifierInstance, bookingNotifierError
}

func (s *bookingNotifier) NotifyBookingOutcome(ctx context.Context, outcome *models.BookingOutcome) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("bookingNotifier.NotifyBookingOutcome called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKindKey, string(outcome.Kind)),
	)

	body, err := json.Marshal(buildNotification(outcome))
	if err != nil {
		s.Log.Error("bookingNotifier.NotifyBookingOutcome error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("bookingNotifier.NotifyBookingOutcome error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrPublishMessage(err, s.Queue)
	}

	s.Log.Info("bookingNotifier.NotifyBookingOutcome succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)
	return nil
}

func buildNotification(outcome *models.BookingOutcome) requests.BookingNotification {
	notification := requests.BookingNotification{
		UserID:    outcome.UserID,
		Kind:      string(outcome.Kind),
		Message:   outcome.Message,
		DoctorID:  outcome.Attempt.DoctorID,
		Date:      outcome.Attempt.Date,
		SlotIndex: outcome.Attempt.SlotIndex,
		Time:      outcome.TimeLabel,
		SettledAt: outcome.SettledAt,
	}
	if outcome.Appointment != nil {
		appointmentID := outcome.Appointment.ID
		notification.AppointmentID = &appointmentID
		notification.Date = outcome.Appointment.Date
		notification.SlotIndex = outcome.Appointment.SlotIndex
	}
	return notification
}

type nopNotifier struct {
	Log *zap.Logger
}

// NewNopNotifier is used when RabbitMQ is disabled.
func NewNopNotifier(logger *zap.Logger) contracts.BookingNotifier {
	return &nopNotifier{Log: logger}
}

func (s *nopNotifier) NotifyBookingOutcome(ctx context.Context, outcome *models.BookingOutcome) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("nopNotifier.NotifyBookingOutcome skipped",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKindKey, string(outcome.Kind)),
	)
	return nil
}
