package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const (
    reservationQueueName = "reservation.confirmed"
    tripQueueName        = "trip.confirmed"
    logDir               = "logs"
    logFile              = "reservations.log"
)

// StartConfirmationConsumer connects to RabbitMQ, declares both
// confirmation queues (durable) and consumes them, appending one line
// per event to logs/reservations.log.  It runs a reconnect loop with
// exponential backoff and never returns under normal operation;
// processing errors reject the offending message without requeueing
// so a poison message cannot wedge the consumer.
func StartConfirmationConsumer(brokerURL string) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(brokerURL)
        if err != nil {
            log.Printf("confirmation-consumer: dial failed: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn); err != nil {
            log.Printf("confirmation-consumer: consume loop ended: %v; reconnecting", err)
            _ = conn.Close()
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("confirmation-consumer: set QoS failed: %v", err)
    }

    for _, name := range []string{reservationQueueName, tripQueueName} {
        if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
            return fmt.Errorf("queue declare %s: %w", name, err)
        }
    }

    hotelMsgs, err := ch.Consume(reservationQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("consume %s: %w", reservationQueueName, err)
    }
    tripMsgs, err := ch.Consume(tripQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("consume %s: %w", tripQueueName, err)
    }

    for {
        select {
        case d, ok := <-hotelMsgs:
            if !ok {
                return errors.New("hotel deliveries channel closed")
            }
            settle(d, handleReservation(d.Body))
        case d, ok := <-tripMsgs:
            if !ok {
                return errors.New("trip deliveries channel closed")
            }
            settle(d, handleTrip(d.Body))
        }
    }
}

func settle(d amqp.Delivery, err error) {
    if err != nil {
        log.Printf("confirmation-consumer: handle message failed: %v", err)
        _ = d.Nack(false, false)
        return
    }
    _ = d.Ack(false)
}

func handleReservation(body []byte) error {
    var ev ReservationConfirmedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    line := fmt.Sprintf("[%s] Reservation confirmed | reservation_id=%d | user=%s | hotel=%q | room_type=%q | room=%s | %s..%s | guests=%d | total=%d cents\n",
        ev.ConfirmedAt, ev.ReservationID, ev.UserEmail, ev.HotelName, ev.RoomTypeName, ev.RoomNumber,
        ev.StartDate, ev.EndDate, ev.Guests, ev.TotalPriceCents)
    return appendLog(line)
}

func handleTrip(body []byte) error {
    var ev TripConfirmedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    line := fmt.Sprintf("[%s] Trip reservation confirmed | reservation_id=%d | user=%s | trip=%q | guests=%d | total=%d cents\n",
        ev.ConfirmedAt, ev.ReservationID, ev.UserEmail, ev.TripName, ev.Guests, ev.TotalPriceCents)
    return appendLog(line)
}

func appendLog(line string) error {
    if err := os.MkdirAll(logDir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", logDir, err)
    }
    f, err := os.OpenFile(filepath.Join(logDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
