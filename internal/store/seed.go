package store

import "hotelinfinity/pkg/model"

func pexels(id, width string) string {
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg?auto=compress&cs=tinysrgb&w=" + width
}

func seedRooms() []model.Room {
	return []model.Room{
		{
			ID:          "1",
			Name:        "Deluxe AC Suite",
			Type:        model.RoomTypeAC,
			Price:       3500,
			Capacity:    2,
			Amenities:   []string{"Free WiFi", "AC", "TV", "Mini Bar", "Room Service", "Balcony"},
			Images:      []string{pexels("271618", "800"), pexels("164595", "800")},
			Available:   true,
			Description: "Luxurious AC suite with modern amenities and stunning city view.",
		},
		{
			ID:          "2",
			Name:        "Standard AC Room",
			Type:        model.RoomTypeAC,
			Price:       2500,
			Capacity:    2,
			Amenities:   []string{"Free WiFi", "AC", "TV", "Room Service"},
			Images:      []string{pexels("271624", "800"), pexels("6585759", "800")},
			Available:   true,
			Description: "Comfortable AC room perfect for business and leisure travelers.",
		},
		{
			ID:          "3",
			Name:        "Economy Non-AC Room",
			Type:        model.RoomTypeNonAC,
			Price:       1500,
			Capacity:    2,
			Amenities:   []string{"Free WiFi", "Fan", "TV", "Attached Bathroom"},
			Images:      []string{pexels("1579253", "800"), pexels("1329711", "800")},
			Available:   true,
			Description: "Budget-friendly room with essential amenities for comfortable stay.",
		},
		{
			ID:          "4",
			Name:        "Family Non-AC Suite",
			Type:        model.RoomTypeNonAC,
			Price:       2200,
			Capacity:    4,
			Amenities:   []string{"Free WiFi", "Fan", "TV", "Extra Bed", "Attached Bathroom"},
			Images:      []string{pexels("2291599", "800"), pexels("1743229", "800")},
			Available:   true,
			Description: "Spacious suite ideal for families with comfortable bedding for four guests.",
		},
	}
}

func seedPartyHalls() []model.PartyHall {
	return []model.PartyHall{
		{
			ID:          "1",
			Name:        "Grand Ballroom",
			Capacity:    200,
			Price:       25000,
			Amenities:   []string{"Sound System", "Projector", "Stage", "AC", "Catering Service", "Decoration"},
			Images:      []string{pexels("169198", "800"), pexels("1395964", "800")},
			Available:   true,
			Description: "Elegant ballroom perfect for weddings, conferences, and grand celebrations.",
		},
		{
			ID:          "2",
			Name:        "Crystal Hall",
			Capacity:    100,
			Price:       15000,
			Amenities:   []string{"Sound System", "AC", "Stage", "Lighting", "Catering Service"},
			Images:      []string{pexels("1395967", "800"), pexels("1024248", "800")},
			Available:   true,
			Description: "Mid-size hall ideal for corporate events, birthday parties, and family gatherings.",
		},
		{
			ID:          "3",
			Name:        "Garden Pavilion",
			Capacity:    150,
			Price:       18000,
			Amenities:   []string{"Open Air", "Sound System", "Garden Setting", "Lighting", "Catering Service"},
			Images:      []string{pexels("2306281", "800"), pexels("1205301", "800")},
			Available:   true,
			Description: "Beautiful outdoor pavilion surrounded by lush gardens, perfect for intimate celebrations.",
		},
	}
}

func seedReviews() []model.Review {
	return []model.Review{
		{
			ID:           "1",
			CustomerName: "Sarah Johnson",
			Rating:       5,
			Comment:      "Exceptional service and beautiful rooms! The AC suite was spotless and the staff was incredibly helpful.",
			Image:        pexels("1036623", "400"),
			Date:         "2024-01-15",
			RoomType:     "Deluxe AC Suite",
		},
		{
			ID:           "2",
			CustomerName: "Mike Chen",
			Rating:       4,
			Comment:      "Great value for money. The party hall was perfect for our corporate event.",
			Image:        pexels("1043474", "400"),
			Date:         "2024-01-20",
			RoomType:     "Crystal Hall",
		},
		{
			ID:           "3",
			CustomerName: "Emily Davis",
			Rating:       5,
			Comment:      "Our wedding at the Grand Ballroom was magical! Everything was perfectly arranged.",
			Image:        pexels("1239291", "400"),
			Date:         "2024-01-25",
			RoomType:     "Grand Ballroom",
		},
		{
			ID:           "4",
			CustomerName: "David Wilson",
			Rating:       4,
			Comment:      "Clean, comfortable, and affordable. The non-AC room was perfect for our budget stay.",
			Date:         "2024-02-01",
			RoomType:     "Economy Non-AC Room",
		},
	}
}

func seedBookings() []model.Booking {
	return []model.Booking{
		{
			ID:           "1",
			CustomerName: "John Doe",
			Email:        "john@example.com",
			Phone:        "+1234567890",
			CheckIn:      "2024-01-15",
			CheckOut:     "2024-01-17",
			RoomID:       "1",
			Type:         model.BookingTypeRoom,
			Guests:       2,
			TotalAmount:  7000,
			Status:       model.BookingStatusConfirmed,
			PaymentID:    "pay_123456789",
			CreatedAt:    "2024-01-10T10:00:00Z",
		},
		{
			ID:           "2",
			CustomerName: "Jane Smith",
			Email:        "jane@example.com",
			Phone:        "+1234567891",
			CheckIn:      "2024-01-20",
			CheckOut:     "2024-01-20",
			HallID:       "1",
			Type:         model.BookingTypeHall,
			Guests:       150,
			TotalAmount:  25000,
			Status:       model.BookingStatusCompleted,
			PaymentID:    "pay_123456790",
			CreatedAt:    "2024-01-15T14:30:00Z",
		},
	}
}
