package sensors_test

// hardwareMonitorTree is a trimmed data.json from a desktop with an Intel CPU and an NVIDIA GPU.
const hardwareMonitorTree = `{
  "id": 0, "Text": "Sensor", "Value": "", "Children": [
    {"id": 1, "Text": "DESKTOP-42", "Value": "", "Children": [
      {"id": 2, "Text": "ASUS PRIME Z390-A", "Value": "", "Children": [
        {"id": 3, "Text": "Nuvoton NCT6798D", "Value": "", "Children": [
          {"id": 4, "Text": "Fans", "Value": "", "Children": [
            {"id": 5, "Text": "Fan #1", "Value": "0 RPM", "Children": []},
            {"id": 6, "Text": "Fan #2", "Value": "1150 RPM", "Children": []}
          ]}
        ]}
      ]},
      {"id": 7, "Text": "Mainboard", "Value": "", "Children": [
        {"id": 8, "Text": "Fans", "Value": "", "Children": [
          {"id": 9, "Text": "CPU Fan", "Value": "1024 RPM", "Children": []}
        ]}
      ]},
      {"id": 10, "Text": "Intel Core i7-9700K", "Value": "", "Children": [
        {"id": 11, "Text": "Temperatures", "Value": "", "Children": [
          {"id": 12, "Text": "CPU Package", "Value": "54.0 °C", "Children": []},
          {"id": 13, "Text": "Core Average", "Value": "49.6 °C", "Children": []}
        ]},
        {"id": 14, "Text": "Load", "Value": "", "Children": [
          {"id": 15, "Text": "CPU Total", "Value": "17.25 %", "Children": []}
        ]}
      ]},
      {"id": 16, "Text": "Generic Memory", "Value": "", "Children": [
        {"id": 17, "Text": "Load", "Value": "", "Children": [
          {"id": 18, "Text": "Memory", "Value": "61.3 %", "Children": []}
        ]}
      ]},
      {"id": 19, "Text": "NVIDIA GeForce RTX 3070", "Value": "", "Children": [
        {"id": 20, "Text": "Temperatures", "Value": "", "Children": [
          {"id": 21, "Text": "GPU Core", "Value": "44.0 °C", "Children": []}
        ]},
        {"id": 22, "Text": "Load", "Value": "", "Children": [
          {"id": 23, "Text": "GPU Core", "Value": "8.0 %", "Children": []}
        ]},
        {"id": 24, "Text": "Fans", "Value": "", "Children": [
          {"id": 25, "Text": "GPU Fan 1", "Value": "987 RPM", "Children": []},
          {"id": 26, "Text": "GPU Fan 2", "Value": "0 RPM", "Children": []}
        ]}
      ]}
    ]}
  ]
}`
