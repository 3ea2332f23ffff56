package main

import (
	"log"

	"app/internal/domain/model"
	"app/internal/infra/db"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the catalog with a small demo dataset. Safe to run repeatedly;
// every row is created with FirstOrCreate.
func main() {
	_ = godotenv.Load()

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Size{},
		&model.Color{},
		&model.Product{},
		&model.Inventory{},
	); err != nil {
		log.Fatal(err)
	}

	if err := seed(gormDB); err != nil {
		log.Fatal(err)
	}
	log.Println("seed done")
}

func seed(tx *gorm.DB) error {
	mens := model.Category{Name: "Men"}
	womens := model.Category{Name: "Women"}
	if err := tx.Where("name = ? AND parent_id IS NULL", mens.Name).FirstOrCreate(&mens).Error; err != nil {
		return err
	}
	if err := tx.Where("name = ? AND parent_id IS NULL", womens.Name).FirstOrCreate(&womens).Error; err != nil {
		return err
	}

	subcats := []model.Category{
		{Name: "Tops", ParentID: &mens.ID},
		{Name: "Bottoms", ParentID: &mens.ID},
		{Name: "Tops", ParentID: &womens.ID},
		{Name: "Bottoms", ParentID: &womens.ID},
	}
	for i := range subcats {
		if err := tx.Where("name = ? AND parent_id = ?", subcats[i].Name, *subcats[i].ParentID).
			FirstOrCreate(&subcats[i]).Error; err != nil {
			return err
		}
	}

	sizes := []model.Size{{Name: "S"}, {Name: "M"}, {Name: "L"}, {Name: "XL"}}
	for i := range sizes {
		if err := tx.Where("name = ?", sizes[i].Name).FirstOrCreate(&sizes[i]).Error; err != nil {
			return err
		}
	}

	colors := []model.Color{
		{Name: "Black", HexCode: "#000000"},
		{Name: "White", HexCode: "#ffffff"},
		{Name: "Navy", HexCode: "#1f2a44"},
	}
	for i := range colors {
		if err := tx.Where("name = ?", colors[i].Name).FirstOrCreate(&colors[i]).Error; err != nil {
			return err
		}
	}

	products := []model.Product{
		{Name: "Crew Neck Tee", Description: "Everyday cotton tee.", Price: 1500, CategoryID: &subcats[0].ID},
		{Name: "Oxford Shirt", Description: "Button-down oxford.", Price: 4500, CategoryID: &subcats[0].ID},
		{Name: "Chino Pants", Description: "Slim fit chinos.", Price: 5900, CategoryID: &subcats[1].ID, IsOnSale: true},
		{Name: "Pleated Skirt", Description: "Midi pleated skirt.", Price: 6400, CategoryID: &subcats[3].ID},
	}
	for i := range products {
		if err := tx.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	for _, p := range products {
		for _, s := range sizes {
			for _, c := range colors {
				inv := model.Inventory{
					ProductID:     p.ID,
					SizeID:        s.ID,
					ColorID:       c.ID,
					StockQuantity: 20,
				}
				if err := tx.Where("product_id = ? AND size_id = ? AND color_id = ?", p.ID, s.ID, c.ID).
					FirstOrCreate(&inv).Error; err != nil {
					return err
				}
			}
		}
	}

	return nil
}
