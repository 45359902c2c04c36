// file: internals/features/finance/payments/service/sweeper.go
package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

/* =========================================================
   Expired transaction sweeper

   Midtrans kadang tidak mengirim notifikasi expire (atau
   hilang di jalan). Sweeper ini jaring pengaman: transaksi
   open yang sudah lewat expires_at dibatalkan dan grant-nya
   di-revert, batch kecil tiap interval.
========================================================= */

const sweeperBatchSize = 50

// StartExpiredTransactionSweeper jalan sampai ctx dibatalkan.
// Panggil sekali dari bootstrap sebagai goroutine.
func (s *PaymentTransactionService) StartExpiredTransactionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	log.Printf("[SWEEPER] expired-transaction sweeper aktif (interval %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SWEEPER] berhenti:", ctx.Err())
			return
		case <-ticker.C:
			if n, err := s.SweepExpired(ctx); err != nil {
				log.Printf("[SWEEPER][ERROR] %v", err)
			} else if n > 0 {
				log.Printf("[SWEEPER] %d transaksi kedaluwarsa dibatalkan", n)
			}
		}
	}
}

// SweepExpired membatalkan satu batch transaksi open yang sudah lewat
// expires_at. Tiap transaksi diproses di transaction sendiri supaya
// satu row bermasalah tidak memblokir sisanya.
func (s *PaymentTransactionService) SweepExpired(ctx context.Context) (int, error) {
	rows, err := s.ListExpiredOpen(ctx, time.Now(), sweeperBatchSize)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range rows {
		id := rows[i].PaymentTransactionID
		cancelled := false
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txn, err := LockTransactionTx(tx, id)
			if err != nil {
				return err
			}
			// Re-check di bawah lock: webhook bisa menyalip antara
			// SELECT batch dan lock.
			if !txn.IsOpen() || !txn.IsExpired(time.Now()) {
				return nil
			}
			if err := txn.MarkCancelled(); err != nil {
				return err
			}
			reason := "expired: melewati batas " + txn.PaymentTransactionExpiresAt.Format(time.RFC3339)
			txn.PaymentTransactionFailureReason = &reason
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
			if err := revertGrantTx(tx, txn); err != nil {
				return err
			}
			cancelled = true
			return nil
		})
		if err != nil {
			log.Printf("[SWEEPER][ERROR] transaksi %s: %v", id, err)
			continue
		}
		if cancelled {
			swept++
		}
	}
	return swept, nil
}
