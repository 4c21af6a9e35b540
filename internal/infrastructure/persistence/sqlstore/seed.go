package sqlstore

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// sampleBooks 本地开发用的示例图书
var sampleBooks = []BookModel{
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Publisher: "Allen & Unwin", ISBN: "9780547928227", Category: "Fiction", PageCount: 310, Price: decimal.RequireFromString("10.99")},
	{Title: "Dune", Author: "Frank Herbert", Publisher: "Chilton Books", ISBN: "9780441013593", Category: "Fiction", PageCount: 412, Price: decimal.RequireFromString("9.99")},
	{Title: "1984", Author: "George Orwell", Publisher: "Secker & Warburg", ISBN: "9780451524935", Category: "Fiction", PageCount: 328, Price: decimal.RequireFromString("8.49")},
	{Title: "Sapiens", Author: "Yuval Noah Harari", Publisher: "Harper", ISBN: "9780062316097", Category: "History", PageCount: 443, Price: decimal.RequireFromString("14.99")},
	{Title: "Guns, Germs, and Steel", Author: "Jared Diamond", Publisher: "W. W. Norton", ISBN: "9780393317558", Category: "History", PageCount: 528, Price: decimal.RequireFromString("13.59")},
	{Title: "The Go Programming Language", Author: "Alan Donovan", Publisher: "Addison-Wesley", ISBN: "9780134190440", Category: "Technology", PageCount: 380, Price: decimal.RequireFromString("34.99")},
	{Title: "Clean Code", Author: "Robert C. Martin", Publisher: "Prentice Hall", ISBN: "9780132350884", Category: "Technology", PageCount: 464, Price: decimal.RequireFromString("29.99")},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Publisher: "O'Reilly", ISBN: "9781449373320", Category: "Technology", PageCount: 616, Price: decimal.RequireFromString("39.99")},
	{Title: "A Brief History of Time", Author: "Stephen Hawking", Publisher: "Bantam", ISBN: "9780553380163", Category: "Science", PageCount: 212, Price: decimal.RequireFromString("12.00")},
	{Title: "The Selfish Gene", Author: "Richard Dawkins", Publisher: "Oxford University Press", ISBN: "9780198788607", Category: "Science", PageCount: 496, Price: decimal.RequireFromString("11.25")},
	{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Publisher: "Farrar, Straus and Giroux", ISBN: "9780374533557", Category: "Psychology", PageCount: 512, Price: decimal.RequireFromString("15.30")},
	{Title: "Atomic Habits", Author: "James Clear", Publisher: "Avery", ISBN: "9780735211292", Category: "Self-Help", PageCount: 320, Price: decimal.RequireFromString("16.20")},
}

// Seed 空表时写入示例图书,返回写入条数
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	books := make([]BookModel, len(sampleBooks))
	copy(books, sampleBooks)
	if err := db.Create(&books).Error; err != nil {
		return 0, err
	}
	return len(books), nil
}
