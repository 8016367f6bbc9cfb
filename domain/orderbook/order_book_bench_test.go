package orderbook

import "testing"

func BenchmarkSubmitResting(b *testing.B) {
	book := NewOrderBook()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Submit(NewOrder(uint64(i), Buy, GoodTillCancel, int64(100-i%64), 1000))
	}
}

func BenchmarkCancel(b *testing.B) {
	book := NewOrderBook()
	for i := 0; i < b.N; i++ {
		book.Submit(NewOrder(uint64(i), Buy, GoodTillCancel, int64(100-i%64), 1000))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Cancel(uint64(i))
	}
}

func BenchmarkSubmitCrossing(b *testing.B) {
	book := NewOrderBook()
	for i := 0; i < 1024; i++ {
		book.Submit(NewOrder(uint64(i), Sell, GoodTillCancel, int64(100+i%16), 1<<40))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Submit(NewOrder(uint64(1024+i), Buy, GoodTillCancel, 110, 1))
	}
}
